package handler

import (
	"net"
	"net/http"
	"strings"

	"careerboard/internal/middleware"
	"careerboard/internal/model"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: clientIP(r)}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return actor
	}

	actor.UserID = claims.UserID
	actor.Username = claims.Username
	actor.Role = claims.Role

	return actor
}

// schedulerActor is reported when the cleanup endpoint is hit with the shared
// scheduler token instead of a user session.
func schedulerActor(r *http.Request) model.AuditActor {
	if actor := actorFromRequest(r); actor.UserID != "" {
		return actor
	}
	return model.AuditActor{UserID: "scheduler", Username: "scheduler", Role: "scheduler", IP: clientIP(r)}
}

func clientIP(r *http.Request) string {
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	xri := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}

	return strings.TrimSpace(r.RemoteAddr)
}
