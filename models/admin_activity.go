package models

// AdminActivityLog admin activity entry
type AdminActivityLog struct {
	ID        int64  `json:"id" db:"id"`
	AdminUID  string `json:"admin_uid" db:"admin_uid"`
	Email     string `json:"email" db:"email"`
	Action    string `json:"action" db:"action"`
	Details   string `json:"details" db:"details"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

// admin activity actions
const (
	AdminActionLogin             = "login"
	AdminActionLogout            = "logout"
	AdminActionCreatePackage     = "create_package"
	AdminActionUpdatePackage     = "update_package"
	AdminActionDeletePackage     = "delete_package"
	AdminActionCreateGalleryItem = "create_gallery_item"
	AdminActionUpdateGalleryItem = "update_gallery_item"
	AdminActionDeleteGalleryItem = "delete_gallery_item"
	AdminActionUpdateProfile     = "update_profile"
	AdminActionUpdateTourLeader  = "update_tour_leader"
	AdminActionPruneSecurity     = "prune_security_state"
)
