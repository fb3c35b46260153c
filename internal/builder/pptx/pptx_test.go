package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/roboco-io/docforge/internal/schema"
)

func unpack(t *testing.T, data []byte) map[string]string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip package: %v", err)
	}
	out := make(map[string]string, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(content)
	}
	return out
}

func TestBuild_PackageStructure(t *testing.T) {
	deck := schema.NewPresentation("Demo Deck")
	deck.AddSlide(schema.Slide{Layout: schema.LayoutTitle, Title: "Demo Deck", Subtitle: "An overview"})
	deck.AddSlide(schema.Slide{
		Layout:  schema.LayoutTitleContent,
		Title:   "Agenda",
		Bullets: []schema.Bullet{{Text: "Introduction"}, {Text: "Detail", Level: 1}},
	})

	data, err := Build(deck)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := unpack(t, data)

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing package part %s", name)
		}
	}

	if !strings.Contains(parts["ppt/presentation.xml"], `cx="12192000" cy="6858000"`) {
		t.Error("presentation should declare a 16:9 slide size")
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "Demo Deck") {
		t.Error("title slide should carry the deck title")
	}
	if !strings.Contains(parts["ppt/slides/slide2.xml"], `lvl="1"`) {
		t.Error("nested bullet should map to paragraph level 1")
	}
}

func TestBuild_ThemeColorsReachTheme(t *testing.T) {
	deck := schema.NewPresentation("")
	deck.Theme.PrimaryColor = "#AB12CD"
	deck.Theme.HeadingFont = "Georgia"
	deck.AddSlide(schema.Slide{Layout: schema.LayoutTitle, Title: "x"})

	data, err := Build(deck)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := unpack(t, data)

	theme := parts["ppt/theme/theme1.xml"]
	if !strings.Contains(theme, "AB12CD") {
		t.Error("primary color should land in the theme color scheme")
	}
	if !strings.Contains(theme, "Georgia") {
		t.Error("heading font should land in the font scheme")
	}
}

func TestBuild_BackgroundOverride(t *testing.T) {
	deck := schema.NewPresentation("")
	deck.AddSlide(schema.Slide{Layout: schema.LayoutBlank, BackgroundColor: "#112233"})
	deck.AddSlide(schema.Slide{Layout: schema.LayoutBlank})

	data, err := Build(deck)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := unpack(t, data)

	if !strings.Contains(parts["ppt/slides/slide1.xml"], `<a:srgbClr val="112233"/>`) {
		t.Error("slide 1 should carry its background override")
	}
	if strings.Contains(parts["ppt/slides/slide2.xml"], "<p:bg>") {
		t.Error("slide 2 should not carry a background override")
	}
}

func TestBuild_SpeakerNotes(t *testing.T) {
	deck := schema.NewPresentation("")
	deck.AddSlide(schema.Slide{Layout: schema.LayoutTitleContent, Title: "T", Notes: "remember the demo login"})

	data, err := Build(deck)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := unpack(t, data)

	notes, ok := parts["ppt/notesSlides/notesSlide1.xml"]
	if !ok {
		t.Fatal("missing notes slide part")
	}
	if !strings.Contains(notes, "remember the demo login") {
		t.Error("notes text should land in the notes part")
	}
	// Notes never render on the slide itself.
	if strings.Contains(parts["ppt/slides/slide1.xml"], "remember the demo login") {
		t.Error("notes text leaked into the visible slide")
	}
	if _, ok := parts["ppt/notesMasters/notesMaster1.xml"]; !ok {
		t.Error("decks with notes need a notes master")
	}
}

func TestBuild_ImagePositions(t *testing.T) {
	tinyPNG := "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

	deck := schema.NewPresentation("")
	deck.AddSlide(schema.Slide{
		Layout: schema.LayoutImageFocus,
		Title:  "Chart",
		Image:  &schema.SlideImage{URL: tinyPNG, Position: schema.ImageFull},
	})

	data, err := Build(deck)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := unpack(t, data)

	if _, ok := parts["ppt/media/image1.png"]; !ok {
		t.Fatal("embedded image bytes missing from media")
	}
	slide := parts["ppt/slides/slide1.xml"]
	// "full" fills the whole slide.
	if !strings.Contains(slide, `<a:off x="0" y="0"/><a:ext cx="12192000" cy="6858000"/>`) {
		t.Error("full-position image should cover the slide")
	}
	if !strings.Contains(parts["ppt/slides/_rels/slide1.xml.rels"], "../media/image1.png") {
		t.Error("slide rels should reference the embedded image")
	}
}

func TestBuild_UnfetchableImageSkipped(t *testing.T) {
	deck := schema.NewPresentation("")
	deck.AddSlide(schema.Slide{
		Layout: schema.LayoutImageFocus,
		Image:  &schema.SlideImage{URL: "data:image/png;base64"},
	})

	data, err := Build(deck)
	if err != nil {
		t.Fatalf("build should not fail on a bad image: %v", err)
	}
	parts := unpack(t, data)
	if strings.Contains(parts["ppt/slides/slide1.xml"], "<p:pic>") {
		t.Error("unfetchable image should be dropped from the slide")
	}
}

func TestBuild_QuoteLayoutEscapesMarkup(t *testing.T) {
	deck := schema.NewPresentation("")
	deck.AddSlide(schema.Slide{
		Layout:      schema.LayoutQuote,
		Quote:       `Ship <fast> & "iterate"`,
		QuoteAuthor: "A. Author",
	})

	data, err := Build(deck)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := unpack(t, data)
	slide := parts["ppt/slides/slide1.xml"]
	if strings.Contains(slide, "<fast>") {
		t.Error("quote text must be XML-escaped")
	}
	if !strings.Contains(slide, "&lt;fast&gt; &amp; &quot;iterate&quot;") {
		t.Error("escaped quote text missing")
	}
}
