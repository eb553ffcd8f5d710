package database

import (
	"fmt"

	"emosound/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey Database Index Organization
// Each database index provides logical separation for different cache categories
const (
	// GENERAL_CACHE_INDEX (DB 0) - General purpose caching
	GENERAL_CACHE_INDEX = iota

	// SESSION_CACHE_INDEX (DB 1) - Active login sessions and failed-login buckets
	SESSION_CACHE_INDEX

	// USER_CACHE_INDEX (DB 2) - User rows and per-user history caches
	USER_CACHE_INDEX

	// EVENTS_CACHE_INDEX (DB 3) - Detection event pub/sub
	EVENTS_CACHE_INDEX

	// CLIENT_API_CACHE_INDEX (DB 4) - Memoized external API responses
	// (Spotify searches, recommendations, quotes)
	CLIENT_API_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.CacheAddress
	port := config.CachePort
	if address == "" || port == 0 {
		return log.ErrMsg("failed to initialize cache database: address or port is empty")
	}

	newClient := func(index int) (valkey.Client, error) {
		return valkey.NewClient(
			valkey.ClientOption{
				InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
				SelectDB:    index,
			},
		)
	}

	var cacheDB Cache
	var err error

	cacheDB.General, err = newClient(GENERAL_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Session, err = newClient(SESSION_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create session valkey client", err)
	}

	cacheDB.User, err = newClient(USER_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create user valkey client", err)
	}

	cacheDB.Events, err = newClient(EVENTS_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create events valkey client", err)
	}

	cacheDB.ClientAPI, err = newClient(CLIENT_API_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create client api valkey client", err)
	}

	s.Cache = cacheDB

	return nil
}
