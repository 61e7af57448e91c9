package router

import (
	"github.com/userhub/userhub/internal/application"
	"github.com/userhub/userhub/internal/container"
	pginfra "github.com/userhub/userhub/internal/infrastructure/postgres"
	handlers "github.com/userhub/userhub/internal/interface/http"
	"github.com/userhub/userhub/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup after the container is populated.
func InitModules(r *Registry) {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	cfg := container.GetConfig()
	logger := container.GetLogger()

	authSvc := application.NewAuthService(repo, container.GetJWT(), logger, cfg.RefreshTTL)

	var emails application.EmailEnqueuer
	if pub := container.GetRabbitPub(); pub != nil {
		emails = pub
	}
	userSvc := application.NewUserService(repo, container.GetCache(), logger, emails)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), container.GetJWT()))
}
