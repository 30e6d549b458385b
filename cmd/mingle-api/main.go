// @title         Mingle API
// @version       0.1.0
// @description   Attendee directory, identity claim, and AI profile enrichment

package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"mingle/internal/platform/config"
	"mingle/internal/platform/kv"
	"mingle/internal/platform/logger"
	phttp "mingle/internal/platform/net/http"
	"mingle/internal/platform/net/middleware"
	"mingle/internal/platform/store"

	"mingle/internal/core/ratelimit"
	"mingle/internal/modkit/httpkit"
	"mingle/internal/services/api"

	perrs "mingle/internal/platform/errors"
)

func main() {
	// service-scoped config for HTTP etc (MINGLE_API_*)
	root := config.New()
	apiCfg := root.Prefix("MINGLE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*
	rlCfg := root.Prefix("RATELIMIT_")     // limiter overrides live under RATELIMIT_*

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// open the platform store (postgres)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "mingle-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// counters and the model cache share one in-process kv store
	// swap behind kv.Store when a shared backend is needed
	kvStore := kv.NewMemory()
	go kvStore.Janitor(context.Background(), time.Duration(rlCfg.MayInt("REAP_SECONDS", 60))*time.Second)

	limiter := ratelimit.New(kvStore, ratelimit.WithProfiles(ratelimit.ProfilesFromConf(rlCfg)))

	// http server (reads MINGLE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:        root,
			Store:         st,
			KV:            kvStore,
			Logger:        l,
			Auth:          authPort(apiCfg, l),
			Admit:         ratelimit.Port{Limiter: limiter},
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// authPort builds the shared-secret bearer parser
// Tokens look like "<user_id>.<hex hmac-sha256(user_id, secret)>"; the real
// verifier lives in the auth subsystem, this is the standalone default
// A nil return disables the guard entirely rather than wrapping a nil pointer
func authPort(cfg config.Conf, l *logger.Logger) middleware.AuthPort {
	secret := cfg.MayString("AUTH_SECRET", "")
	if secret == "" {
		l.Warn().Msg("MINGLE_API_AUTH_SECRET not set, claim requests will be rejected")
		return nil
	}
	return httpkit.NewPortFunc(func(token string) (string, error) {
		uid, sig, ok := strings.Cut(token, ".")
		if !ok || uid == "" {
			return "", perrs.Unauthorizedf("malformed token")
		}
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(uid))
		want := hex.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(want), []byte(strings.ToLower(sig))) {
			return "", perrs.Unauthorizedf("bad token signature")
		}
		return uid, nil
	})
}
