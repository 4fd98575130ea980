package prompts

// Content ratings, configured server-wide.
const (
	RatingG    = "G"
	RatingPG   = "PG"
	RatingPG13 = "PG13"
	RatingR    = "R"
)

const ContentRatingG = `Keep everything suitable for young children. Avoid violence, romance and scary elements.`
const ContentRatingPG = `Keep everything suitable for children and families. Mild peril is okay, but avoid strong language and dark themes.`
const ContentRatingPG13 = `Keep everything appropriate for teenagers. Mild swearing and tension are okay, but avoid explicit adult situations and graphic violence.`
const ContentRatingR = `Speak with full freedom for adult audiences.`

// ValidRating reports whether rating is a known content rating.
func ValidRating(rating string) bool {
	switch rating {
	case RatingG, RatingPG, RatingPG13, RatingR:
		return true
	}
	return false
}

// CleanLanguage reports whether output under rating must be free of
// profanity.
func CleanLanguage(rating string) bool {
	switch rating {
	case RatingG, RatingPG, RatingPG13:
		return true
	}
	return false
}

// GetContentRatingPrompt returns the guidance for rating, defaulting to R.
func GetContentRatingPrompt(rating string) string {
	switch rating {
	case RatingG:
		return ContentRatingG
	case RatingPG:
		return ContentRatingPG
	case RatingPG13:
		return ContentRatingPG13
	default:
		return ContentRatingR
	}
}
