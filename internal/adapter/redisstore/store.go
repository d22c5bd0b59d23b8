// Package redisstore implements domain.RecordStore on Redis. Records live as
// JSON documents under path-style keys mirroring the platform's document tree:
//
//	users/{uid}          -> domain.UserProfile
//	activeCamp/{uid}     -> plain camp id string
//	camps                -> map[campID]domain.Camp
//	campLocations/{year} -> map[locationID]domain.CampLocation
//	userPrefs/{uid}      -> domain.StoredPreferences
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/campsight/camp-weather-service/internal/domain"
)

// Store reads camp and user records from Redis.
type Store struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// New creates a Store over an existing Redis client.
func New(rdb *redis.Client, logger *slog.Logger) *Store {
	return &Store{rdb: rdb, logger: logger}
}

// Ping verifies connectivity; called once at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) UserProfile(ctx context.Context, uid string) (domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := s.getJSON(ctx, "users/"+uid, &profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func (s *Store) ActiveCampID(ctx context.Context, uid string) (string, error) {
	val, err := s.rdb.Get(ctx, "activeCamp/"+uid).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get activeCamp/%s: %w", uid, err)
	}
	return val, nil
}

func (s *Store) Camps(ctx context.Context) (map[string]domain.Camp, error) {
	var camps map[string]domain.Camp
	if err := s.getJSON(ctx, "camps", &camps); err != nil {
		return nil, err
	}
	return camps, nil
}

func (s *Store) CampLocations(ctx context.Context, year int) (map[string]domain.CampLocation, error) {
	var locations map[string]domain.CampLocation
	if err := s.getJSON(ctx, "campLocations/"+strconv.Itoa(year), &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *Store) Preferences(ctx context.Context, uid string) (domain.StoredPreferences, error) {
	var prefs domain.StoredPreferences
	if err := s.getJSON(ctx, "userPrefs/"+uid, &prefs); err != nil {
		return domain.StoredPreferences{}, err
	}
	return prefs, nil
}

func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
