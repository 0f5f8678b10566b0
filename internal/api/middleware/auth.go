package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль пользователя"
)

type actorKey struct{}

// Auth извлекает инициатора запроса из заголовков X-User-ID и X-User-Role
// Аутентификация выполняется шлюзом; сервис только доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		role, ok := parseRole(r.Header.Get(HeaderUserRole))
		if !ok {
			handlers.RespondBadRequest(w, msgInvalidRole)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey{}, domain.Actor{ID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor возвращает инициатора запроса
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	return actor.ID, ok
}

// WithActor кладёт инициатора в контекст (используется в тестах)
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func parseRole(raw string) (domain.ActorRole, bool) {
	switch domain.ActorRole(raw) {
	case "":
		return domain.RoleCustomer, true
	case domain.RoleCustomer, domain.RoleEmployee, domain.RoleManager, domain.RoleSystem:
		return domain.ActorRole(raw), true
	default:
		return "", false
	}
}
