package handlers

import (
	"github.com/jmoiron/sqlx"

	"tradenook/internal/config"
	"tradenook/internal/repos"
	"tradenook/internal/services"
)

// LoginAttempts is how many logins one client may try per LoginWindow.
const LoginAttempts = 5

type Deps struct {
	Sessions *services.AuthService

	Auth       *AuthHandler
	Categories *CategoryHandler
	Products   *ProductHandler
	Search     *SearchHandler
	Admin      *AdminHandler
	Uploads    *UploadHandler

	LoginAttempts int
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	fee := cfg.ListingFee
	store, err := services.NewStore(db, services.Options{
		ListingFee:      &fee,
		VerifyPasswords: cfg.VerifyPasswords,
	})
	if err != nil {
		return nil, err
	}
	auth := &services.AuthService{Store: store, Sessions: repos.NewSessionRepo(db)}

	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 5
	}

	return &Deps{
		Sessions:      auth,
		Auth:          &AuthHandler{Auth: auth},
		Categories:    &CategoryHandler{Auth: auth},
		Products:      &ProductHandler{Auth: auth},
		Search:        &SearchHandler{Auth: auth},
		Admin:         &AdminHandler{Auth: auth},
		Uploads:       &UploadHandler{MediaDir: cfg.MediaDir, MaxBytes: int64(maxMB) << 20},
		LoginAttempts: LoginAttempts,
	}, nil
}
