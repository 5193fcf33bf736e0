package query

import "eventize/models"

func IsFavorite(eventID string, favorites models.FavoriteSet) bool {
	return favorites.Contains(eventID)
}

func AddFavorite(eventID string, favorites models.FavoriteSet) models.FavoriteSet {
	return favorites.With(eventID)
}

func RemoveFavorite(eventID string, favorites models.FavoriteSet) models.FavoriteSet {
	return favorites.Without(eventID)
}

func ToggleFavorite(eventID string, favorites models.FavoriteSet) models.FavoriteSet {
	return favorites.Toggle(eventID)
}
