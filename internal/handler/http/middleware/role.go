package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
	"github.com/hadirclass/hadir-backend-go/internal/handler/http/response"
)

// RequireTeacher requires teacher role
func RequireTeacher(next http.Handler) http.Handler {
	return requireRole(next, user.RoleTeacher, user.ErrTeacherAccessRequired)
}

// RequireStudent requires student role
func RequireStudent(next http.Handler) http.Handler {
	return requireRole(next, user.RoleStudent, user.ErrStudentAccessRequired)
}

func requireRole(next http.Handler, required user.Role, accessErr error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, accessErr)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != required {
			response.HandleError(w, accessErr)
			return
		}

		next.ServeHTTP(w, r)
	})
}
