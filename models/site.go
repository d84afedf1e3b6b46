package models

// Tour leader texts shown on the public page when the document fields are empty
const (
	DefaultTourLeaderName        = "Sri Wahyuningsih (Bunda Chika)"
	DefaultTourLeaderExperience  = "15+ tahun"
	DefaultTourLeaderPhone       = "+62 812-3456-7890"
	DefaultTourLeaderDescription = "Tour Leader berpengalaman dengan dedikasi tinggi dalam melayani jamaah umrah. Telah mendampingi ribuan jamaah dengan penuh kesabaran dan keikhlasan."
)

// SiteContent everything the public landing page renders
type SiteContent struct {
	Title        string         `json:"title"`
	Tagline      string         `json:"tagline"`
	About        string         `json:"about"`
	Profile      ProfileCard    `json:"profile"`
	TourLeader   TourLeaderCard `json:"tour_leader"`
	Packages     []Package      `json:"packages"`
	Gallery      []GalleryCard  `json:"gallery"`
	Testimonials []Testimonial  `json:"testimonials"`
	WhatsAppLink string         `json:"whatsapp_link,omitempty"`
	Footer       string         `json:"footer"`
}

// ProfileCard public view of the company profile
type ProfileCard struct {
	Address  string `json:"address"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url,omitempty"`
}

// TourLeaderCard public view of the tour leader with defaults applied
type TourLeaderCard struct {
	Name         string `json:"name"`
	Experience   string `json:"experience"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}

// GalleryCard public view of a gallery item
type GalleryCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Testimonial static pilgrim quote
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Note   string `json:"note"`
}
