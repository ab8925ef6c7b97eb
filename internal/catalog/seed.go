package catalog

// SeedPets returns the built-in adoptable pet catalog. In a real deployment
// this would be sourced from a shelter backend; the app treats it as a static
// snapshot loaded once per session.
func SeedPets() []Pet {
	return []Pet{
		{
			ID:          "1",
			Name:        "Bella",
			Breed:       "Golden Retriever",
			Age:         "3 months",
			Distance:    "2.5km",
			Gender:      GenderFemale,
			Weight:      "8kg",
			Size:        SizeMedium,
			Image:       "https://images.unsplash.com/photo-1552053831-71594a27632d?auto=format&fit=crop&q=80&w=600",
			Personality: []string{"Friendly", "Active", "Smart"},
			Description: "Bella is a sweet golden retriever puppy looking for a loving home with plenty of space to run.",

			AdoptionStatus: StatusAvailable,
			Owner: Owner{
				Name:     "Sarah J.",
				Avatar:   "https://i.pravatar.cc/150?u=sarah",
				Location: "San Francisco, CA",
			},
		},
		{
			ID:          "2",
			Name:        "Mochi",
			Breed:       "British Shorthair",
			Age:         "2 years",
			Distance:    "5km",
			Gender:      GenderMale,
			Weight:      "4.5kg",
			Size:        SizeSmall,
			Image:       "https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?auto=format&fit=crop&q=80&w=600",
			Personality: []string{"Quiet", "Independent", "Cuddly"},
			Description: "Mochi is a sophisticated gentleman who loves lounging in sunbeams and gentle head scratches.",

			AdoptionStatus: StatusPending,
			Owner: Owner{
				Name:     "David W.",
				Avatar:   "https://i.pravatar.cc/150?u=david",
				Location: "Oakland, CA",
			},
		},
		{
			ID:          "3",
			Name:        "Charlie",
			Breed:       "French Bulldog",
			Age:         "4 years",
			Distance:    "1.2km",
			Gender:      GenderMale,
			Weight:      "12kg",
			Size:        SizeSmall,
			Image:       "https://images.unsplash.com/photo-1583511655857-d19b40a7a54e?auto=format&fit=crop&q=80&w=600",
			Personality: []string{"Playful", "Brave", "Loyal"},
			Description: "Charlie is a small dog with a big heart. He gets along great with children and other pets.",

			AdoptionStatus: StatusAdopted,
			Owner: Owner{
				Name:     "Emma L.",
				Avatar:   "https://i.pravatar.cc/150?u=emma",
				Location: "San Mateo, CA",
			},
		},
		{
			ID:          "4",
			Name:        "Luna",
			Breed:       "Siamese",
			Age:         "1 year",
			Distance:    "8km",
			Gender:      GenderFemale,
			Weight:      "3.8kg",
			Size:        SizeSmall,
			Image:       "https://images.unsplash.com/photo-1513245543132-31f507417b26?auto=format&fit=crop&q=80&w=600",
			Personality: []string{"Vocal", "Social", "Curious"},
			Description: "Luna is a social butterfly who will follow you around and talk to you all day long.",

			AdoptionStatus: StatusAvailable,
			Owner: Owner{
				Name:     "Michael R.",
				Avatar:   "https://i.pravatar.cc/150?u=mike",
				Location: "San Jose, CA",
			},
		},
		{
			ID:          "5",
			Name:        "Ghost",
			Breed:       "Husky Mix",
			Age:         "2 years",
			Distance:    "12km",
			Gender:      GenderMale,
			Weight:      "15kg",
			Size:        SizeLarge,
			Image:       "https://images.unsplash.com/photo-1518717758536-85ae29035b6d?auto=format&fit=crop&q=80&w=600",
			Personality: []string{"Shy", "Calm"},
			Description: "A mysterious dog found wandering. He needs a patient owner to help him come out of his shell.",

			AdoptionStatus: StatusAvailable,
			Owner: Owner{
				Name:     "Shelter Alpha",
				Avatar:   "https://i.pravatar.cc/150?u=shelter",
				Location: "Berkeley, CA",
			},
		},
	}
}

// SeedThreads returns the built-in message threads shown before any chat
// activity in the session.
func SeedThreads() []ChatThread {
	return []ChatThread{
		{ID: "1", Name: "Sarah J.", Avatar: "https://i.pravatar.cc/150?u=sarah", LastMsg: "Bella's vaccination records are ready for you.", Time: "10:30 AM", Unread: 2, IsOnline: true},
		{ID: "2", Name: "David W.", Avatar: "https://i.pravatar.cc/150?u=david", LastMsg: "Could you visit Mochi on Saturday afternoon?", Time: "Yesterday", Unread: 0, IsOnline: true},
		{ID: "3", Name: "Michael R.", Avatar: "https://i.pravatar.cc/150?u=mike", LastMsg: "Luna really likes this cat food.", Time: "Tue", Unread: 0, IsOnline: false},
		{ID: "4", Name: "Emma L.", Avatar: "https://i.pravatar.cc/150?u=emma", LastMsg: "Thanks for taking such good care of Charlie!", Time: "Monday", Unread: 0, IsOnline: true},
	}
}

// SeedApplications returns the built-in adoption application history.
func SeedApplications() []AdoptionApplication {
	return []AdoptionApplication{
		{ID: "1", PetName: "Bella", PetImage: "https://images.unsplash.com/photo-1552053831-71594a27632d?auto=format&fit=crop&q=80&w=600", Status: AppInterview, Date: "2023-11-20"},
		{ID: "2", PetName: "Mochi", PetImage: "https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?auto=format&fit=crop&q=80&w=600", Status: AppReviewing, Date: "2023-11-22"},
	}
}
