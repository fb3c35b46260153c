package schema

// Presentation represents the semantic model of a slide deck.
type Presentation struct {
	Kind     string     `json:"kind"` // always "presentation"
	Metadata Metadata   `json:"metadata"`
	Theme    SlideTheme `json:"theme"`
	Slides   []Slide    `json:"slides"`
}

// SlideTheme contains the deck-wide colors and fonts.
type SlideTheme struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	HeadingFont     string `json:"heading_font,omitempty"`
	BodyFont        string `json:"body_font,omitempty"`
}

// SlideLayout selects the fixed coordinate template used for a slide.
type SlideLayout string

const (
	LayoutTitle         SlideLayout = "title"
	LayoutSectionHeader SlideLayout = "section_header"
	LayoutTitleContent  SlideLayout = "title_content"
	LayoutTwoColumn     SlideLayout = "two_column"
	LayoutComparison    SlideLayout = "comparison"
	LayoutImageFocus    SlideLayout = "image_focus"
	LayoutQuote         SlideLayout = "quote"
	LayoutBlank         SlideLayout = "blank"
)

// Slide carries a layout plus a layout-dependent bag of optional fields.
// Which fields are meaningful is determined by Layout; builders silently
// ignore fields that do not apply to the chosen layout.
type Slide struct {
	Layout          SlideLayout `json:"layout"`
	Title           string      `json:"title,omitempty"`
	Subtitle        string      `json:"subtitle,omitempty"`
	Content         string      `json:"content,omitempty"`
	Bullets         []Bullet    `json:"bullets,omitempty"`
	LeftTitle       string      `json:"left_title,omitempty"`
	RightTitle      string      `json:"right_title,omitempty"`
	LeftBullets     []Bullet    `json:"left_bullets,omitempty"`
	RightBullets    []Bullet    `json:"right_bullets,omitempty"`
	Image           *SlideImage `json:"image,omitempty"`
	Quote           string      `json:"quote,omitempty"`
	QuoteAuthor     string      `json:"quote_author,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	BackgroundColor string      `json:"background_color,omitempty"` // per-slide override
}

// Bullet is a single bullet line with nesting level and optional styling.
type Bullet struct {
	Text  string       `json:"text"`
	Level int          `json:"level,omitempty"` // 0 = top level
	Style *BulletStyle `json:"style,omitempty"`
}

// BulletStyle overrides theme defaults for one bullet.
type BulletStyle struct {
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  string  `json:"color,omitempty"` // hex
	Size   float64 `json:"size,omitempty"`  // points
}

// ImagePosition selects one of the fixed slide image rectangles.
type ImagePosition string

const (
	ImageLeft   ImagePosition = "left"
	ImageRight  ImagePosition = "right"
	ImageCenter ImagePosition = "center"
	ImageFull   ImagePosition = "full" // fills the slide, ignores width/height
)

// SlideImage is an image placed on a slide, resolved or pending generation.
type SlideImage struct {
	URL      string        `json:"url,omitempty"`
	AIPrompt string        `json:"ai_prompt,omitempty"`
	Position ImagePosition `json:"position,omitempty"`
	Caption  string        `json:"caption,omitempty"`
}

// NewPresentation creates an empty presentation deck.
func NewPresentation(title string) *Presentation {
	return &Presentation{
		Kind:     KindPresentation,
		Metadata: Metadata{Title: title},
		Theme:    DefaultSlideTheme(),
		Slides:   make([]Slide, 0),
	}
}

// DefaultSlideTheme returns the baseline deck theme.
func DefaultSlideTheme() SlideTheme {
	return SlideTheme{
		PrimaryColor:    "#1F4E79",
		SecondaryColor:  "#2E75B6",
		BackgroundColor: "#FFFFFF",
		TextColor:       "#333333",
		HeadingFont:     "Calibri",
		BodyFont:        "Calibri",
	}
}

// AddSlide appends a slide to the deck.
func (p *Presentation) AddSlide(s Slide) {
	p.Slides = append(p.Slides, s)
}
