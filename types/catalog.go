package types

// Pricing classifies how a tool is monetized.
type Pricing string

const (
	PricingFree     Pricing = "free"
	PricingFreemium Pricing = "freemium"
	PricingPaid     Pricing = "paid"
)

// Tool is a single directory entry mirrored from the remote `tools` table.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Icon        string   `json:"icon,omitempty"`
	Images      []string `json:"images,omitempty"`
	CategoryID  string   `json:"category_id"`
	Tags        []string `json:"tags,omitempty"`
	Pricing     Pricing  `json:"pricing"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Category groups tools. ParentID may reference another category or be empty.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// News category discriminants used by the `news` table.
const (
	NewsCategoryBreaking = "breaking"
	NewsCategoryDaily    = "daily"
)

// NewsItem is a short news entry. Date is date-only (YYYY-MM-DD); Time,
// when present, is HH:MM.
type NewsItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content,omitempty"`
	Source   string   `json:"source,omitempty"`
	Date     string   `json:"date"`
	Time     string   `json:"time,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Link     string   `json:"link,omitempty"`
	Category string   `json:"category,omitempty"`
}

// DailyItem is one generated daily digest. There is normally a single
// item per day; Content carries the full rendered digest.
type DailyItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Image   string `json:"image,omitempty"`
}

// Article is a long-form editorial entry kept in the remote `articles`
// table; rows are written by the markdown migration.
type Article struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ContentMD   string `json:"content_md,omitempty"`
	AuthorID    string `json:"author_id,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
