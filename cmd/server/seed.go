package main

import "go-event-hub/internal/model"

// mockEvents 記憶體 catalog 的預設資料
func mockEvents() []*model.Event {
	return []*model.Event{
		{
			ID:            "1",
			Title:         "Tech Innovation Summit 2024",
			Description:   "Join industry leaders for a day of talks on AI, cloud and the future of software.",
			Date:          "2024-03-15",
			Time:          "09:00",
			Location:      "San Francisco Convention Center",
			Capacity:      500,
			Registered:    342,
			Price:         299,
			Category:      "Conference",
			Image:         "https://images.pexels.com/photos/2774556/pexels-photo-2774556.jpeg?auto=compress&cs=tinysrgb&w=800",
			OrganizerID:   "org1",
			OrganizerName: "Tech Events Inc",
			Status:        model.EventStatusUpcoming,
		},
		{
			ID:            "2",
			Title:         "Design Thinking Workshop",
			Description:   "A hands-on workshop covering user research, ideation and rapid prototyping.",
			Date:          "2024-02-28",
			Time:          "14:00",
			Location:      "Design Studio, New York",
			Capacity:      30,
			Registered:    28,
			Price:         150,
			Category:      "Workshop",
			Image:         "https://images.pexels.com/photos/3184465/pexels-photo-3184465.jpeg?auto=compress&cs=tinysrgb&w=800",
			OrganizerID:   "org2",
			OrganizerName: "Creative Minds",
			Status:        model.EventStatusUpcoming,
		},
		{
			ID:            "3",
			Title:         "Startup Networking Night",
			Description:   "Meet founders, investors and builders over drinks.",
			Date:          "2024-03-05",
			Time:          "18:30",
			Location:      "The Hub, Austin",
			Capacity:      100,
			Registered:    100,
			Price:         0,
			Category:      "Networking",
			Image:         "https://images.pexels.com/photos/1181396/pexels-photo-1181396.jpeg?auto=compress&cs=tinysrgb&w=800",
			OrganizerID:   "org1",
			OrganizerName: "Tech Events Inc",
			Status:        model.EventStatusUpcoming,
		},
		{
			ID:            "4",
			Title:         "Summer Music Festival",
			Description:   "Three stages of live music, food trucks and art installations.",
			Date:          "2024-07-20",
			Time:          "12:00",
			Location:      "Central Park, New York",
			Capacity:      5000,
			Registered:    3200,
			Price:         89,
			Category:      "Festival",
			Image:         "https://images.pexels.com/photos/1190298/pexels-photo-1190298.jpeg?auto=compress&cs=tinysrgb&w=800",
			OrganizerID:   "org3",
			OrganizerName: "Live Nation Local",
			Status:        model.EventStatusUpcoming,
		},
	}
}
