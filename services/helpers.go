package services

import (
	"fmt"
	"strings"

	"github.com/mkalnins/volleyball-league/models"
	"github.com/mkalnins/volleyball-league/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func populateClubLogoURL(club *models.Club, uploader storage.FileUploader) {
	if club != nil && club.LogoKey != nil && *club.LogoKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*club.LogoKey); url != "" {
			club.LogoURL = &url
		}
	}
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
			team.LogoURL = &url
		}
	}
}

func populateSponsorLogoURL(sponsor *models.Sponsor, uploader storage.FileUploader) {
	if sponsor != nil && sponsor.LogoKey != nil && *sponsor.LogoKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*sponsor.LogoKey); url != "" {
			sponsor.LogoURL = &url
		}
	}
}

// GetExtensionFromContentType maps an image content type to the file
// extension used for uploaded logo keys.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
	}
}
