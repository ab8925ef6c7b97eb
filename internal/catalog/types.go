// Package catalog is the single source of truth for the pet catalog and
// session-created records (feed posts, adoption applications, chat threads).
// Pages hold pet IDs, never copies; they re-resolve against the store so a
// status change is visible everywhere immediately.
package catalog

// Size is a pet's body size class.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Gender of a pet.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// AdoptionStatus tracks where a pet is in the adoption pipeline.
type AdoptionStatus string

const (
	StatusAvailable AdoptionStatus = "Available"
	StatusPending   AdoptionStatus = "Pending"
	StatusAdopted   AdoptionStatus = "Adopted"
)

// Owner identifies the person or shelter currently caring for a pet.
type Owner struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Location string `json:"location"`
}

// Pet is a catalog entry. Age, Distance and Weight are free-text as sourced
// (e.g. "3 months", "2.5km", "8kg") and parsed defensively where needed.
type Pet struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Breed          string         `json:"breed"`
	Age            string         `json:"age"`
	Distance       string         `json:"distance"`
	Image          string         `json:"image"`
	Gender         Gender         `json:"gender"`
	Weight         string         `json:"weight"`
	Size           Size           `json:"size"`
	Personality    []string       `json:"personality"`
	Description    string         `json:"description"`
	AdoptionStatus AdoptionStatus `json:"adoptionStatus"`
	Owner          Owner          `json:"owner"`
}

// ApplicationStatus is the review stage of an adoption application.
type ApplicationStatus string

const (
	AppReviewing ApplicationStatus = "Reviewing"
	AppInterview ApplicationStatus = "Interview"
	AppHomeVisit ApplicationStatus = "Home Visit"
	AppApproved  ApplicationStatus = "Approved"
	AppRejected  ApplicationStatus = "Rejected"
)

// AdoptionApplication is a session-created application record.
type AdoptionApplication struct {
	ID       string            `json:"id"`
	PetName  string            `json:"petName"`
	PetImage string            `json:"petImage"`
	Status   ApplicationStatus `json:"status"`
	Date     string            `json:"date"`
}

// FeedPost is a community feed entry, most-recent-first.
type FeedPost struct {
	ID       string `json:"id"`
	Author   string `json:"author"`
	Avatar   string `json:"avatar"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	Likes    int    `json:"likes"`
	Liked    bool   `json:"liked"`
	Comments int    `json:"comments"`
	Time     string `json:"time"`
}

// ChatThread is a conversation with a pet owner or shelter.
type ChatThread struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	LastMsg  string `json:"lastMsg"`
	Time     string `json:"time"`
	Unread   int    `json:"unread"`
	IsOnline bool   `json:"isOnline"`
}

// ChatMessage is a single message within a thread.
type ChatMessage struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
	Time     string `json:"time"`
	IsMe     bool   `json:"isMe"`
}
