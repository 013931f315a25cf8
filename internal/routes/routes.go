package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/virtual-defence/vds-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Get("/api/auth/me", handlers.Me)
	r.Post("/api/auth/signout", handlers.Signout)

	// Profile routes
	r.Get("/api/profile", handlers.GetProfile)
	r.Put("/api/profile", handlers.UpdateProfile)

	// Complaint routes
	r.Post("/api/complaints", handlers.CreateComplaint)
	r.Get("/api/complaints", handlers.GetComplaints)
	r.Put("/api/complaints/status", handlers.UpdateComplaintStatus)
	r.Delete("/api/complaints", handlers.DeleteComplaint)

	// Admin access requests
	r.Post("/api/admin-requests", handlers.CreateAdminRequest)
	r.Get("/api/admin-requests/status", handlers.GetAdminRequestStatus)
	r.Get("/api/admin-requests", handlers.GetAdminRequests)
	r.Put("/api/admin-requests", handlers.UpdateAdminRequest)

	// Rate-limit block administration
	r.Get("/api/admin/blocked-ips", handlers.GetIPBlockStatus)
	r.Put("/api/admin/unblock-ip", handlers.UnblockIP)

	// Notification routes
	r.Post("/api/notifications", handlers.SendNotification)
	r.Get("/api/notifications", handlers.GetNotifications)

	// Assistant chat routes
	r.Post("/api/chat/session", handlers.NewChatSession)
	r.Post("/api/chat", handlers.SendChatMessage)
	r.Get("/api/chat", handlers.GetChatMessages)
	r.Get("/api/chat/logs", handlers.GetChatLogs)

	// Recovery stations and geocoding
	r.Get("/api/stations", handlers.GetStations)
	r.Get("/api/geocode", handlers.GeocodeSearch)

	// File upload routes
	r.Post("/api/upload", handlers.UploadFile)

	// WebSocket endpoint for live collection updates
	r.Get("/ws/events", handlers.EventsWebSocket)
}
