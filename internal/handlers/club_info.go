// Package handlers holds small public endpoints that need no auth.
package handlers

import (
	"encoding/json"
	"net/http"
)

type clubInfo struct {
	Name     string   `json:"name"`
	About    string   `json:"about"`
	Founded  string   `json:"founded"`
	Contact  string   `json:"contact"`
	Mission  string   `json:"mission"`
	WhatWeDo []string `json:"what_we_do"`
}

// ClubInfo handles GET /api/v1/club-info (public, no auth). It serves the
// static About/Contact content the informational pages render.
func ClubInfo(w http.ResponseWriter, _ *http.Request) {
	info := clubInfo{
		Name:    "ACM Student Chapter @ UDST",
		About:   "A community of students passionate about computing, innovation, and collaboration.",
		Founded: "2025-02-07",
		Contact: "acmudst@example.org",
		Mission: "Empower students to explore computing through hands-on learning, networking, and real-world projects.",
		WhatWeDo: []string{
			"Organize tech talks, coding workshops, and competitions",
			"Host collaborative events with industry professionals",
			"Provide learning resources and mentorship for aspiring developers",
		},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(info)
}
