package models

import "time"

// Pricing holds the per-person rates for each party-size band plus the
// flat tour cost. Bands are fixed: 1, 2, 3-5, 6-9, 10+.
type Pricing struct {
	Solo           float64 `json:"solo" bson:"solo"`
	TwoPax         float64 `json:"twoPax" bson:"twoPax"`
	ThreeToFivePax float64 `json:"threeToFivePax" bson:"threeToFivePax"`
	SixToNinePax   float64 `json:"sixToNinePax" bson:"sixToNinePax"`
	TenPaxAbove    float64 `json:"tenPaxAbove" bson:"tenPaxAbove"`
	TourCost       float64 `json:"tourCost" bson:"tourCost"`
}

// DayImage wraps a single resolved image URL. Persisted entries are always
// http(s) URLs, never inline base64 data.
type DayImage struct {
	ImageURL string `json:"imageUrl" bson:"imageUrl"`
}

// ItineraryDay is one embedded segment of an itinerary's schedule. Days have
// no lifecycle of their own; they live and die with the parent itinerary.
// DayNumber is 1-based and contiguous, matching array order after every
// mutation.
type ItineraryDay struct {
	DayID       string     `json:"_id" bson:"dayid"`
	DayNumber   int        `json:"dayNumber" bson:"dayNumber"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Location    string     `json:"location" bson:"location"`
	Images      []DayImage `json:"images" bson:"images"`
}

// Itinerary is a tour package. Exactly one of Category/TourType is set when
// persisted; setting one clears the other.
type Itinerary struct {
	ItineraryID string  `json:"_id" bson:"itineraryid"`
	Title       string  `json:"title" bson:"title"`
	ShortDesc   string  `json:"short_desc" bson:"short_desc"`
	LongDesc    string  `json:"long_desc" bson:"long_desc"`
	Location    string  `json:"location" bson:"location"`
	Category    *string `json:"category" bson:"category"`
	TourType    *string `json:"tour_type" bson:"tour_type"`
	Difficulty  string  `json:"difficulty" bson:"difficulty"`
	Pricing     Pricing `json:"pricing" bson:"pricing"`

	StartDate *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`

	Status        string `json:"status" bson:"status"` // Draft/Published/Archived
	CoverImageURL string `json:"cover_image_url" bson:"cover_image_url"`
	IsCoverImg    bool   `json:"is_cover_img" bson:"is_cover_img"`

	Days []ItineraryDay `json:"itinerary_days" bson:"itinerary_days"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// DayByID returns a pointer into Days for the matching day id, or nil.
func (it *Itinerary) DayByID(dayID string) *ItineraryDay {
	for i := range it.Days {
		if it.Days[i].DayID == dayID {
			return &it.Days[i]
		}
	}
	return nil
}

// GalleryEntry is one photo in the public gallery.
type GalleryEntry struct {
	GalleryID string    `json:"_id" bson:"galleryid"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	PlaceName string    `json:"place_name" bson:"place_name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Testimonial is a customer review in the moderation queue.
type Testimonial struct {
	TestimonialID string    `json:"_id" bson:"testimonialid"`
	Username      string    `json:"username" bson:"username"`
	UserImage     string    `json:"user_image" bson:"user_image"`
	Rating        int       `json:"rating" bson:"rating"`
	Description   string    `json:"description" bson:"description"`
	Status        string    `json:"status" bson:"status"` // Pending/Approved
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// Admin is a back-office user. Password holds only the bcrypt hash.
type Admin struct {
	AdminID   string    `json:"id" bson:"adminid"`
	Email     string    `json:"email" bson:"email"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Enum values, checked at the handler boundary.
var (
	Categories   = []string{"Culture", "Festival"}
	TourTypes    = []string{"Trekking", "Walking", "Adventure"}
	Difficulties = []string{"Easy", "Medium", "Hard"}
	Statuses     = []string{"Draft", "Published", "Archived"}
)
