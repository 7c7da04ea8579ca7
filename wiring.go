package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/signature-homes-backend/api"
	"github.com/rpupo63/signature-homes-backend/config"
	"github.com/rpupo63/signature-homes-backend/content"
	"github.com/rpupo63/signature-homes-backend/database"
	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/metrics"
	"github.com/rpupo63/signature-homes-backend/services"
	"github.com/rpupo63/signature-homes-backend/session"
)

const (
	catalogSourceFile     = "file"
	catalogSourceDatabase = "database"
)

// buildDependencies wires everything the HTTP server needs. cleanup releases
// connections and stops background work.
func (a *app) buildDependencies(ctx context.Context) (api.Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (api.Dependencies, func(), error) {
		cleanup()
		return api.Dependencies{}, func() {}, err
	}

	file, err := content.Load(config.GetString(a.config, "CATALOG_PATH", ""))
	if err != nil {
		return fail(err)
	}

	db, err := database.Open(a.config)
	if err != nil {
		return fail(err)
	}

	var deps api.Dependencies
	var repo services.SubmissionRepo
	var store database.Database
	if db != nil {
		closers = append(closers, func() { closeDB(db) })
		store = database.New(db)
		if config.GetBool(a.config, "DB_AUTO_MIGRATE", true) {
			if err := store.Migrate(); err != nil {
				return fail(fmt.Errorf("failed to migrate database: %w", err))
			}
		}
		repo = store.ContactSubmissionRepo()
		deps.Submissions = store.ContactSubmissionRepo()
		log.Info().Msg("Connected to database")
	} else {
		log.Info().Msg("No DB_TYPE set, running without a database")
	}

	catalog, err := a.loadCatalog(file, db, store)
	if err != nil {
		return fail(err)
	}
	log.Info().
		Int("projects", len(catalog.Projects())).
		Int("images", len(catalog.Images())).
		Msg("Loaded gallery catalog")

	sessions, stop, err := a.buildSessionStore(ctx)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, stop)

	contact, err := a.buildContactService(repo)
	if err != nil {
		return fail(err)
	}
	// let in-flight inquiry notifications finish on shutdown
	closers = append(closers, contact.Wait)

	images, err := a.buildImageResolver(ctx)
	if err != nil {
		return fail(err)
	}

	deps.Content = file
	deps.Catalog = catalog
	deps.Sessions = sessions
	deps.Contact = contact
	deps.Images = images
	return deps, cleanup, nil
}

// loadCatalog builds the catalog from the content file, or from the database
// when CATALOG_SOURCE=database
func (a *app) loadCatalog(file *content.File, db *gorm.DB, store database.Database) (*gallery.Catalog, error) {
	source := config.GetString(a.config, "CATALOG_SOURCE", catalogSourceFile)
	switch source {
	case catalogSourceFile:
		return file.Catalog()
	case catalogSourceDatabase:
		if db == nil {
			return nil, errs.NewConfigError("DB_TYPE")
		}
		return store.LoadCatalog()
	default:
		return nil, fmt.Errorf("unsupported CATALOG_SOURCE %q", source)
	}
}

// buildSessionStore uses redis when REDIS_ADDR is set, otherwise an in-process store
func (a *app) buildSessionStore(ctx context.Context) (session.Store, func(), error) {
	ttl := config.GetDuration(a.config, "SESSION_TTL_MINUTES", time.Minute, int(session.DefaultTTL/time.Minute))

	if addr := config.GetString(a.config, "REDIS_ADDR", ""); addr != "" {
		rdb := session.NewRedisClient(addr, config.GetString(a.config, "REDIS_PASSWORD", ""), config.GetInt(a.config, "REDIS_DB", 0))
		store := session.NewRedisStore(rdb, ttl)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			rdb.Close()
			return nil, nil, errs.NewServiceUnavailableError("redis", err)
		}

		log.Info().Str("addr", addr).Msg("Using redis session store")
		return store, func() { rdb.Close() }, nil
	}

	store := session.NewMemoryStore(ttl)
	sweepCtx, cancel := context.WithCancel(ctx)
	go store.RunSweeper(sweepCtx, time.Minute, metrics.SetActiveSessions)

	log.Info().Dur("ttl", ttl).Msg("Using in-memory session store")
	return store, cancel, nil
}

// buildContactService wires the form relay and whichever notifiers are configured
func (a *app) buildContactService(repo services.SubmissionRepo) (*services.ContactService, error) {
	endpoint := config.GetString(a.config, "FORM_ENDPOINT", "")
	if endpoint == "" {
		return nil, errs.NewConfigError("FORM_ENDPOINT")
	}
	relay := services.NewFormRelay(endpoint, config.GetDuration(a.config, "FORM_TIMEOUT_SECONDS", time.Second, 10))

	var notifiers []services.Notifier

	apiKey := config.GetString(a.config, "RESEND_API_KEY", "")
	recipients := config.GetList(a.config, "NOTIFY_EMAIL")
	if apiKey != "" && len(recipients) > 0 {
		mailer := services.NewResendMailer(apiKey, config.GetString(a.config, "RESEND_FROM_EMAIL", ""))
		notifiers = append(notifiers, services.NewEmailNotifier(mailer, recipients))
	}

	sid := config.GetString(a.config, "TWILIO_ACCOUNT_SID", "")
	phone := config.GetString(a.config, "NOTIFY_PHONE", "")
	if sid != "" && phone != "" {
		notifiers = append(notifiers, services.NewTwilioTexter(
			sid,
			config.GetString(a.config, "TWILIO_AUTH_TOKEN", ""),
			config.GetString(a.config, "TWILIO_FROM_NUMBER", ""),
			phone,
		))
	}

	for _, n := range notifiers {
		log.Info().Str("channel", n.Name()).Msg("Inquiry notifications enabled")
	}
	return services.NewContactService(relay, repo, log.Logger, notifiers...), nil
}

// buildImageResolver presigns from S3 when IMAGE_S3_BUCKET is set, otherwise
// prefixes IMAGE_BASE_URL
func (a *app) buildImageResolver(ctx context.Context) (services.ImageResolver, error) {
	bucket := config.GetString(a.config, "IMAGE_S3_BUCKET", "")
	if bucket == "" {
		return services.NewStaticResolver(config.GetString(a.config, "IMAGE_BASE_URL", "")), nil
	}

	region := config.GetString(a.config, "IMAGE_S3_REGION", config.GetString(a.config, "AWS_REGION", ""))
	expires := config.GetDuration(a.config, "IMAGE_URL_TTL_MINUTES", time.Minute, 60)
	return services.NewS3Resolver(ctx, region, bucket, expires)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("Error closing database")
	}
}
