package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"eventize/db"
	"eventize/models"
)

const FAVORITES_KEY_V1 = "user_preferences_favorites_v1"
const CACHED_LOCATION_KEY_V1 = "user_preferences_cached_location_v1"

// RedisPreferencesDAO persists user preferences as whole JSON values.
type RedisPreferencesDAO struct {
	client db.RedisClient
}

func NewRedisPreferencesDAO(client db.RedisClient) *RedisPreferencesDAO {
	return &RedisPreferencesDAO{client: client}
}

// GetFavorites returns the stored favorite set, or an empty set if none was saved.
func (dao *RedisPreferencesDAO) GetFavorites() (models.FavoriteSet, error) {
	str, err := dao.client.Get(FAVORITES_KEY_V1)
	if errors.Is(err, db.ErrKeyNotFound) {
		return models.NewFavoriteSet(), nil
	}
	if err != nil {
		return models.FavoriteSet{}, fmt.Errorf("[RedisPreferencesDAO] failed to get favorites: %w", err)
	}

	var set models.FavoriteSet
	if err := json.Unmarshal([]byte(str), &set); err != nil {
		return models.FavoriteSet{}, fmt.Errorf("failed to unmarshal favorites JSON: %w", err)
	}
	return set, nil
}

func (dao *RedisPreferencesDAO) SetFavorites(set models.FavoriteSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := dao.client.Set(FAVORITES_KEY_V1, string(data)); err != nil {
		return fmt.Errorf("failed to set favorites in redis: %w", err)
	}
	return nil
}

// GetCachedLocation returns nil when no location has been cached.
func (dao *RedisPreferencesDAO) GetCachedLocation() (*models.Coordinate, error) {
	str, err := dao.client.Get(CACHED_LOCATION_KEY_V1)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[RedisPreferencesDAO] failed to get cached location: %w", err)
	}

	var c models.Coordinate
	if err := json.Unmarshal([]byte(str), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached location JSON: %w", err)
	}
	return &c, nil
}

// SetCachedLocation stores c; nil clears the cached value.
func (dao *RedisPreferencesDAO) SetCachedLocation(c *models.Coordinate) error {
	if c == nil {
		if err := dao.client.Del(CACHED_LOCATION_KEY_V1); err != nil {
			return fmt.Errorf("failed to delete cached location: %w", err)
		}
		log.Println("[RedisPreferencesDAO] Cleared cached location")
		return nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cached location: %w", err)
	}
	if err := dao.client.Set(CACHED_LOCATION_KEY_V1, string(data)); err != nil {
		return fmt.Errorf("failed to set cached location in redis: %w", err)
	}
	return nil
}
