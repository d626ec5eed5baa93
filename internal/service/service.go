// Package service holds the business rules between the HTTP layer and the
// repositories. Every operation takes the requesting models.Viewer explicitly.
package service

import "github.com/Karan-RajKR/social-lite/internal/models"

// requireViewer rejects anonymous viewers on write paths.
func requireViewer(v models.Viewer) error {
	if v.IsAnonymous() {
		return models.ErrNotAuthenticated
	}
	return nil
}
