package main

import (
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/service"
)

var catalogue = []service.DestinationInput{
	{
		Title:        "Neon Tokyo Adventure",
		Description:  "Experience the cyberpunk culture of modern Tokyo with guided tours through tech districts, robot restaurants, and virtual reality arcades. This futuristic journey combines traditional Japanese culture with cutting-edge technology.",
		Location:     "Tokyo, Japan",
		Price:        2499,
		Image:        "/futuristic-tokyo-cityscape-neon-lights.jpg",
		Category:     "tech",
		Duration:     "7 days",
		MaxGroupSize: 12,
		Difficulty:   models.DifficultyModerate,
		Highlights: []string{
			"Visit the world's most advanced robot restaurant",
			"Experience VR gaming in Akihabara",
			"Guided tour of tech startups in Shibuya",
			"Traditional tea ceremony with holographic guides",
			"Night photography in neon-lit districts",
		},
	},
	{
		Title:        "Digital Nomad Safari",
		Description:  "Traditional safari meets modern technology with drone photography, VR wildlife experiences, and satellite-guided game drives. Capture the African wilderness like never before.",
		Location:     "Maasai Mara, Kenya",
		Price:        1899,
		Image:        "/african-safari-with-modern-technology.jpg",
		Category:     "adventure",
		Duration:     "5 days",
		MaxGroupSize: 8,
		Difficulty:   models.DifficultyEasy,
		Highlights: []string{
			"Drone photography of the Great Migration",
			"VR wildlife encounters",
			"Satellite-guided night game drives",
			"Digital campfire stories with local tribes",
			"Solar-powered luxury camping",
		},
	},
	{
		Title:        "Arctic Aurora Tech",
		Description:  "Chase the Northern Lights with advanced prediction technology and heated glass igloos. This high-tech Arctic adventure combines natural wonders with modern comfort.",
		Location:     "Reykjavik, Iceland",
		Price:        3299,
		Image:        "/northern-lights-iceland-futuristic.jpg",
		Category:     "nature",
		Duration:     "6 days",
		MaxGroupSize: 10,
		Difficulty:   models.DifficultyChallenging,
		Highlights: []string{
			"AI-powered aurora prediction system",
			"Heated glass igloo accommodation",
			"Thermal drone photography",
			"Geothermal spa with smart temperature control",
			"Northern Lights time-lapse workshops",
		},
	},
	{
		Title:        "Cyberpunk Singapore",
		Description:  "Explore the smart city of the future with IoT tours, vertical farming visits, and AI-guided cultural experiences. Singapore's blend of tradition and innovation awaits.",
		Location:     "Singapore",
		Price:        1799,
		Image:        "/singapore-futuristic-skyline.jpg",
		Category:     "urban",
		Duration:     "4 days",
		MaxGroupSize: 15,
		Difficulty:   models.DifficultyEasy,
		Highlights: []string{
			"Smart city IoT infrastructure tour",
			"Vertical farming facility visits",
			"AI-powered cultural heritage walks",
			"Futuristic architecture photography",
			"Tech startup ecosystem exploration",
		},
	},
	{
		Title:        "Himalayan Tech Trek",
		Description:  "High-altitude adventure enhanced with satellite communication, weather prediction AI, and drone-assisted navigation. Experience the world's highest peaks with cutting-edge safety technology.",
		Location:     "Everest Base Camp, Nepal",
		Price:        4299,
		Image:        "/himalayan-mountains-with-technology.jpg",
		Category:     "adventure",
		Duration:     "14 days",
		MaxGroupSize: 6,
		Difficulty:   models.DifficultyExtreme,
		Highlights: []string{
			"Satellite communication throughout trek",
			"AI weather prediction for safety",
			"Drone-assisted route navigation",
			"High-altitude photography workshops",
			"Traditional Sherpa culture with modern safety",
		},
	},
	{
		Title:        "Virtual Venice Experience",
		Description:  "Explore Venice through augmented reality historical reconstructions, underwater drone tours of submerged areas, and digital art installations in ancient palazzos.",
		Location:     "Venice, Italy",
		Price:        2199,
		Image:        "/venice-canals-with-ar-overlay.jpg",
		Category:     "culture",
		Duration:     "5 days",
		MaxGroupSize: 12,
		Difficulty:   models.DifficultyEasy,
		Highlights: []string{
			"AR historical reconstructions",
			"Underwater drone canal exploration",
			"Digital art in historic palazzos",
			"Virtual gondola experiences",
			"Interactive museum technologies",
		},
	},
}
