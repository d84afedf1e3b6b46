package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samiratravel/models"
)

func TestLandingTemplate_Renders(t *testing.T) {
	tmpl, err := LandingTemplate()
	require.NoError(t, err)

	content := models.SiteContent{
		Title:   "SAMIRA TRAVEL",
		Tagline: "Sahabat Umroh & Haji Keluarga Anda",
		Profile: models.ProfileCard{Address: "Jl. Merdeka 1", Email: "info@samira.id", ImageURL: "/media/profile"},
		TourLeader: models.TourLeaderCard{
			Name:         "Bunda Chika",
			Experience:   "15+ tahun",
			Phone:        "+62 812",
			WhatsAppLink: "https://wa.me/62812",
		},
		Packages: []models.Package{
			{ID: "pkg-1", Name: "Umrah <Reguler>", Description: "9 hari", Features: []string{"Hotel"}, Facilities: []string{"Visa"}},
		},
		Gallery: []models.GalleryCard{
			{ID: "doc-1", Name: "Manasik", Description: "Jakarta", ImageURL: "/media/gallery/doc-1"},
			{ID: "doc-2", Name: "Tanpa foto", Description: "-"},
		},
		Testimonials: []models.Testimonial{{Quote: "Alhamdulillah", Author: "Ibu Siti", Note: "2023"}},
		WhatsAppLink: "https://wa.me/62812",
		Footer:       "Amanah",
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, content))
	out := buf.String()

	assert.Contains(t, out, "Umrah &lt;Reguler&gt;")
	assert.Contains(t, out, `src="/media/gallery/doc-1"`)
	assert.Contains(t, out, `href="https://wa.me/62812"`)
	assert.Contains(t, out, "Sahabat Umroh &amp; Haji Keluarga Anda")
	assert.Contains(t, out, `<span class="avatar">B</span>`)
}

func TestLandingTemplate_EmptyCollections(t *testing.T) {
	tmpl, err := LandingTemplate()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, models.SiteContent{Title: "SAMIRA TRAVEL"}))
	assert.Contains(t, buf.String(), "Paket belum tersedia")
	assert.Contains(t, buf.String(), "Dokumentasi belum tersedia")
}
