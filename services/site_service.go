package services

import (
	"context"
	"errors"

	"samiratravel/models"
)

const (
	siteTitle   = "SAMIRA TRAVEL"
	siteTagline = "Sahabat Umroh & Haji Keluarga Anda"
	siteAbout   = "Samira Travel hadir untuk melayani perjalanan ibadah Umrah dan Haji Anda dengan pelayanan terpercaya, fasilitas lengkap, dan bimbingan profesional yang berpengalaman."
	siteFooter  = "Melayani perjalanan ibadah Umrah & Haji dengan penuh profesionalisme, kenyamanan, dan amanah."
)

var siteTestimonials = []models.Testimonial{
	{
		Quote:  "Alhamdulillah, perjalanan umrah bersama Bunda Chika sangat berkesan. Beliau sabar membimbing dan membantu kami memahami setiap rukun serta sunnah umrah dengan baik.",
		Author: "Ibu Siti Aminah",
		Note:   "Jamaah Umrah 2023",
	},
}

// Media paths the public page links images to
const (
	ProfileMediaPath    = "/media/profile"
	TourLeaderMediaPath = "/media/tour-leader"
	GalleryMediaPrefix  = "/media/gallery/"
)

// SiteService assembles the public landing page content.
type SiteService interface {
	Content(ctx context.Context) (models.SiteContent, error)
}

type siteService struct {
	packages PackageService
	gallery  GalleryService
	profile  ProfileService
	leader   TourLeaderService
}

// NewSiteService creates a SiteService over the content services.
func NewSiteService(packages PackageService, gallery GalleryService, profile ProfileService, leader TourLeaderService) SiteService {
	return &siteService{packages: packages, gallery: gallery, profile: profile, leader: leader}
}

// TourLeaderCardFor applies the public defaults to a stored tour leader.
func TourLeaderCardFor(leader models.TourLeader) models.TourLeaderCard {
	card := models.TourLeaderCard{
		Name:        leader.Name,
		Experience:  leader.Experience,
		Phone:       leader.Phone,
		Description: leader.Description,
	}
	if card.Name == "" {
		card.Name = models.DefaultTourLeaderName
	}
	if card.Experience == "" {
		card.Experience = models.DefaultTourLeaderExperience
	}
	if card.Phone == "" {
		card.Phone = models.DefaultTourLeaderPhone
	}
	if card.Description == "" {
		card.Description = models.DefaultTourLeaderDescription
	}
	card.WhatsAppLink = WhatsAppLink(card.Phone)
	if leader.Image != "" {
		card.ImageURL = TourLeaderMediaPath
	}
	return card
}

func (s *siteService) Content(ctx context.Context) (models.SiteContent, error) {
	content := models.SiteContent{
		Title:        siteTitle,
		Tagline:      siteTagline,
		About:        siteAbout,
		Footer:       siteFooter,
		Testimonials: siteTestimonials,
	}

	packages, err := s.packages.List(ctx)
	if err != nil {
		return models.SiteContent{}, err
	}
	content.Packages = packages

	items, err := s.gallery.List(ctx)
	if err != nil {
		return models.SiteContent{}, err
	}
	content.Gallery = make([]models.GalleryCard, 0, len(items))
	for _, item := range items {
		card := models.GalleryCard{ID: item.ID, Name: item.Name, Description: item.Description}
		if item.Image != "" {
			card.ImageURL = GalleryMediaPrefix + item.ID
		}
		content.Gallery = append(content.Gallery, card)
	}

	profile, err := s.profile.Get(ctx)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return models.SiteContent{}, err
	}
	content.Profile = models.ProfileCard{Address: profile.Address, Email: profile.Email}
	if profile.Image != "" {
		content.Profile.ImageURL = ProfileMediaPath
	}

	leader, err := s.leader.Get(ctx)
	if err != nil && !errors.Is(err, ErrTourLeaderNotFound) {
		return models.SiteContent{}, err
	}
	content.TourLeader = TourLeaderCardFor(leader)
	content.WhatsAppLink = content.TourLeader.WhatsAppLink

	return content, nil
}
