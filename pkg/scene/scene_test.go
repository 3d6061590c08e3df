package scene

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/assets"
	"github.com/matzehuels/orchard/pkg/cache"
	"github.com/matzehuels/orchard/pkg/fonts"
	"github.com/matzehuels/orchard/pkg/integrations/tetrio"
	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/theme"
	"github.com/matzehuels/orchard/pkg/tournament"
)

func newEnv(t *testing.T, tune func(*theme.Theme)) *Env {
	t.Helper()
	th := theme.Default()
	if tune != nil {
		tune(th)
	}
	return NewEnv(th, assets.NewLibrary(t.TempDir(), nil), nil, nil)
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// writeGIF writes an n-frame w x h animation alternating black and white.
func writeGIF(t *testing.T, dir, name string, w, h, n int) {
	t.Helper()
	pal := color.Palette{color.Black, color.White}
	g := &gif.GIF{}
	for i := range n {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		draw.Draw(frame, frame.Bounds(), &image.Uniform{C: pal[i%2]}, image.Point{}, draw.Src)
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatal(err)
	}
}

func TestNewEnvFontFallback(t *testing.T) {
	env := newEnv(t, func(th *theme.Theme) {
		th.Assets.Font = "missing.ttf"
	})
	if env.Font != fonts.Default() {
		t.Errorf("Font = %s, want embedded default", env.Font.Name())
	}
	if env.Display != fonts.DefaultBold() {
		t.Errorf("Display = %s, want embedded bold", env.Display.Name())
	}
}

func TestBracket(t *testing.T) {
	env := newEnv(t, func(th *theme.Theme) {
		th.Bracket.Frames = 2
	})
	results := map[string][2]layout.Entry{
		layout.WinnersFinal: {layout.NewEntry("Player A", 11), layout.NewEntry("Player C", 6)},
	}

	seq, l, err := Bracket(context.Background(), env, results)
	if err != nil {
		t.Fatalf("Bracket() error = %v", err)
	}
	if seq.Len() != 2 {
		t.Errorf("frames = %d, want 2", seq.Len())
	}
	if got := seq.Bounds(); got.Dx() != 1920-240-192 || got.Dy() != 1080-103-95 {
		t.Errorf("bounds = %v, want cropped 1488x882", got)
	}
	if seq.Delay != 100*time.Millisecond {
		t.Errorf("delay = %v", seq.Delay)
	}
	if len(l.Slots) != 11 || len(l.Connectors) != 9 {
		t.Errorf("layout = %d slots, %d connectors", len(l.Slots), len(l.Connectors))
	}
	g, _ := l.Slot(layout.WinnersFinal)
	if g.Entries[0].Name != "Player A" || g.Entries[1].Value != "6" {
		t.Errorf("Winners Final entries = %+v", g.Entries)
	}
	tf, _ := l.Slot(layout.TrueFinal)
	if tf.Entries[0].Name != layout.Placeholder {
		t.Errorf("True Final entry = %q, want %q", tf.Entries[0].Name, layout.Placeholder)
	}
}

func TestBracketTakesBackgroundSize(t *testing.T) {
	dir := t.TempDir()
	writeGIF(t, dir, "sky.gif", 1280, 720, 2)
	th := theme.Default()
	th.Assets.BracketBack = "sky.gif"
	th.Bracket.Crop = theme.Insets{}
	env := NewEnv(th, assets.NewLibrary(dir, nil), nil, nil)

	seq, l, err := Bracket(context.Background(), env, nil)
	if err != nil {
		t.Fatalf("Bracket() error = %v", err)
	}
	if seq.Len() != 2 || seq.Bounds() != image.Rect(0, 0, 1280, 720) {
		t.Errorf("bracket = %d frames, %v, want 2 frames of 1280x720", seq.Len(), seq.Bounds())
	}
	if l.Width != 12.8 || l.Height != 7.2 {
		t.Errorf("figure = %vx%v units, want 12.8x7.2", l.Width, l.Height)
	}

	bare, err := BracketLayout(env, nil)
	if err != nil {
		t.Fatal(err)
	}
	if bare.Width != l.Width || bare.Height != l.Height {
		t.Errorf("BracketLayout figure = %vx%v, want %vx%v", bare.Width, bare.Height, l.Width, l.Height)
	}
}

func TestScenesTakeBackgroundSize(t *testing.T) {
	dir := t.TempDir()
	writeGIF(t, dir, "bg.gif", 320, 200, 2)
	writeGIF(t, dir, "dono-wall.gif", 300, 180, 1)
	th := theme.Default()
	smallDonors(th)
	env := NewEnv(th, assets.NewLibrary(dir, nil), nil, nil)
	ctx := context.Background()

	card := solid(40, 60, color.NRGBA{255, 0, 0, 255})
	poster, err := Poster(ctx, env)
	if err != nil {
		t.Fatalf("Poster() error = %v", err)
	}

	tests := []struct {
		name string
		got  image.Rectangle
		want image.Rectangle
	}{
		{"versus", Versus(ctx, env, card, card).Bounds(), image.Rect(0, 0, 320, 200)},
		{"poster", poster.Bounds(), image.Rect(0, 0, 320, 200)},
		{"wall", DonorWall(ctx, env, DonorScroll(env, testDonors())).Bounds(), image.Rect(0, 0, 300, 180)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("bounds = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestBracketLayoutLabelOverride(t *testing.T) {
	env := newEnv(t, func(th *theme.Theme) {
		th.Bracket.Labels = map[string]string{layout.GrandFinal: "", layout.TrueFinal: "Reset"}
	})
	l, err := BracketLayout(env, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g, _ := l.Slot(layout.GrandFinal); g.HasLabel {
		t.Error("Grand Final label should be hidden")
	}
	if g, _ := l.Slot(layout.TrueFinal); g.Label != "Reset" {
		t.Errorf("True Final label = %q", g.Label)
	}
	if l.Width != 19.2 || l.Height != 10.8 {
		t.Errorf("figure = %vx%v units", l.Width, l.Height)
	}
}

func TestCardFrontPlaceholderAvatar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	lib := assets.NewLibrary(t.TempDir(), nil)
	fetcher := assets.NewFetcher(cache.NewNullCache(), lib, nil)
	env := NewEnv(theme.Default(), lib, fetcher, nil)

	p := tetrio.Profile{
		User:      tetrio.User{ID: "1", Username: "osk", AR: 300},
		League:    tetrio.League{TR: 24000, Rank: "x", PPS: 2.5, APM: 150, VS: 320},
		AvatarURL: server.URL + "/avatar.jpg",
		FlagURL:   server.URL + "/flag.png",
		RankURL:   server.URL + "/rank.png",
	}
	img := CardFront(context.Background(), env, p, 3, "Plays every piece twice")
	if got := img.Bounds(); got.Dx() != 400 || got.Dy() != 700 {
		t.Fatalf("bounds = %v", got)
	}

	// The avatar centre shows the generated apple.
	c := nrgbaAt(img, 200, 100+110)
	if c.R < 150 || c.G > 100 || c.B > 100 {
		t.Errorf("avatar centre = %v, want placeholder red", c)
	}
	if a := nrgbaAt(img, 0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want rounded mask", a)
	}
}

func TestCardBack(t *testing.T) {
	env := newEnv(t, nil)
	img := CardBack(context.Background(), env)
	if got := img.Bounds(); got.Dx() != 400 || got.Dy() != 700 {
		t.Fatalf("bounds = %v", got)
	}
	if a := nrgbaAt(img, 0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want rounded mask", a)
	}
	if a := nrgbaAt(img, 200, 600).A; a != 255 {
		t.Errorf("face alpha = %d, want opaque", a)
	}
}

func TestFlipAngle(t *testing.T) {
	tests := []struct {
		i, n  int
		speed float64
		want  float64
	}{
		{0, 5, 1, 180},
		{1, 5, 1, 135},
		{2, 5, 1, 90},
		{3, 5, 1, 45},
		{0, 60, 4, 180},
		{59, 60, 4, 180},
	}
	for _, tt := range tests {
		if got := flipAngle(tt.i, tt.n, tt.speed); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("flipAngle(%d, %d, %v) = %v, want %v", tt.i, tt.n, tt.speed, got, tt.want)
		}
	}
}

func TestCardFlip(t *testing.T) {
	front := solid(40, 60, color.NRGBA{255, 0, 0, 255})
	back := solid(40, 60, color.NRGBA{0, 0, 255, 255})

	ct := theme.Default().Card
	if seq := CardFlip(front, back, ct); seq.Len() != 60 || seq.Bounds().Dx() != 1200 || seq.Delay != 50*time.Millisecond {
		t.Errorf("default flip = %d frames, %v, %v", seq.Len(), seq.Bounds(), seq.Delay)
	}

	ct.FlipFrames, ct.FlipSpeed, ct.FlipWidth, ct.FlipHeight = 5, 1, 100, 100
	seq := CardFlip(front, back, ct)
	if c := nrgbaAt(seq.Frames[1], 50, 50); c.B < 250 || c.R > 5 {
		t.Errorf("frame 1 centre = %v, want back", c)
	}
	if a := nrgbaAt(seq.Frames[2], 50, 50).A; a != 0 {
		t.Errorf("frame 2 centre alpha = %d, want edge-on", a)
	}
	if c := nrgbaAt(seq.Frames[3], 50, 50); c.R < 250 || c.B > 5 {
		t.Errorf("frame 3 centre = %v, want front", c)
	}
	if w := nrgbaAt(seq.Frames[1], 50-20+2, 50).A; w != 0 {
		t.Errorf("frame 1 should be narrower than the card, alpha at edge = %d", w)
	}
}

func TestVersus(t *testing.T) {
	env := newEnv(t, func(th *theme.Theme) {
		th.Versus.Width, th.Versus.Height, th.Versus.Frames = 300, 150, 3
		th.Versus.Size = 20
	})
	left := solid(40, 60, color.NRGBA{255, 0, 0, 255})
	right := solid(40, 60, color.NRGBA{0, 0, 255, 255})

	seq := Versus(context.Background(), env, left, right)
	if seq.Len() != 3 || seq.Bounds() != image.Rect(0, 0, 300, 150) {
		t.Fatalf("versus = %d frames, %v", seq.Len(), seq.Bounds())
	}
	if c := nrgbaAt(seq.Frames[0], 10, 75); c.R < 250 || c.B > 5 {
		t.Errorf("left card pixel = %v", c)
	}
	if c := nrgbaAt(seq.Frames[2], 290, 75); c.B < 250 || c.R > 5 {
		t.Errorf("right card pixel = %v", c)
	}
}

func TestCommentaryFallback(t *testing.T) {
	var blue bytes.Buffer
	if err := png.Encode(&blue, solid(64, 64, color.NRGBA{0, 0, 255, 255})); err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blue.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(blue.Bytes())
	}))
	defer server.Close()

	th := theme.Default()
	th.Commentary.Width, th.Commentary.Height = 900, 450
	th.Commentary.AvatarSize = 100
	th.Commentary.NameSize, th.Commentary.SocialSize = 20, 16
	lib := assets.NewLibrary(t.TempDir(), nil)
	fetcher := assets.NewFetcher(cache.NewNullCache(), lib, nil)
	env := NewEnv(th, lib, fetcher, nil)

	people := []tetrio.Profile{
		tetrio.Fallback("ghost"),
		{
			User: tetrio.User{Username: "caster", Socials: []tetrio.Social{
				{Service: "twitch", Name: "caster_tv"},
				{Service: "discord", Name: "caster#1"},
				{Service: "twitter", Name: "@caster"},
				{Service: "twitter", Name: "@fourth"},
			}},
			AvatarURL: server.URL + "/missing.png",
		},
		{User: tetrio.User{Username: "blue"}, AvatarURL: server.URL + "/blue.png"},
	}
	img := Commentary(context.Background(), env, people)
	if img.Bounds() != image.Rect(0, 0, 900, 450) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := fetcher.Failures(); got != 1 {
		t.Errorf("fetch failures = %d, want 1", got)
	}

	// Columns centre at 150, 450 and 750; avatars sit at 0.60 from the
	// bottom (y = 180).
	for _, x := range []int{150, 450} {
		if c := nrgbaAt(img, x, 180); c.R < 150 || c.G > 100 || c.B > 100 {
			t.Errorf("avatar at x=%d = %v, want placeholder red", x, c)
		}
	}
	if c := nrgbaAt(img, 750, 180); c.B < 200 || c.R > 50 {
		t.Errorf("fetched avatar = %v, want blue", c)
	}

	// Social rows are centred at 306, 346.5, 387 and 427.5; sample inside
	// each box above the text.
	box := th.Commentary.SocialBox.NRGBA()
	if c := nrgbaAt(img, 450, 291); c != box {
		t.Errorf("first social row = %v, want box %v", c, box)
	}
	if c := nrgbaAt(img, 450, 372); c != box {
		t.Errorf("third social row = %v, want box %v", c, box)
	}
	if c := nrgbaAt(img, 450, 412); c == box {
		t.Errorf("fourth social drawn, want at most %d", tetrio.MaxSocials)
	}
	if c := nrgbaAt(img, 150, 291); c == box {
		t.Error("fallback commentator should have no social rows")
	}
}

func TestCommentatorName(t *testing.T) {
	p := tetrio.Profile{User: tetrio.User{Username: "caster"}}
	if got := commentatorName(tetrio.Fallback("ghost"), 1); got != "USER2" {
		t.Errorf("fallback name = %q, want USER2", got)
	}
	if got := commentatorName(p, 1); got != "CASTER" {
		t.Errorf("name = %q, want CASTER", got)
	}
}

func testDonors() []tournament.Donor {
	return []tournament.Donor{
		{Name: "small", Amount: 500, Comment: "gl"},
		{Name: "big", Amount: 5000, Comment: "Good luck to every player in the orchard this weekend"},
		{Name: "mid", Amount: 1500, Comment: ""},
	}
}

func smallDonors(th *theme.Theme) {
	th.Donors.Width, th.Donors.Height = 200, 100
	th.Donors.EntryHeight, th.Donors.Speed = 50, 5
	th.Donors.NameSize, th.Donors.CommentSize = 12, 10
	th.Donors.WallWidth, th.Donors.WallHeight = 240, 160
}

func TestDonorScroll(t *testing.T) {
	env := newEnv(t, smallDonors)
	donors := testDonors()

	seq := DonorScroll(env, donors)
	if want := 50 * 3 * 2 / 5; seq.Len() != want {
		t.Fatalf("frames = %d, want %d", seq.Len(), want)
	}
	if seq.Delay != 50*time.Millisecond || !seq.Loop {
		t.Errorf("delay = %v, loop = %v", seq.Delay, seq.Loop)
	}
	if seq.Bounds().Dx() != 200 || seq.Bounds().Dy() != 100 {
		t.Errorf("bounds = %v", seq.Bounds())
	}

	strip, cycle := DonorStrip(env, donors)
	if cycle != 150 {
		t.Errorf("cycle = %d, want 150", cycle)
	}
	for _, tt := range []struct{ frame, offset int }{{0, 0}, {1, 145}, {30, 0}} {
		want := imaging.Crop(strip, image.Rect(0, tt.offset, 200, tt.offset+100))
		got := imaging.Clone(seq.Frames[tt.frame])
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("frame %d differs from the strip at offset %d", tt.frame, tt.offset)
		}
	}
	if donors[0].Name != "small" {
		t.Error("DonorScroll must not reorder its input")
	}
}

func TestCommentRoom(t *testing.T) {
	tests := map[int]int{
		theme.Default().Donors.EntryHeight: 2,
		50:                                 1,
		10:                                 1,
		200:                                6,
	}
	for h, want := range tests {
		if got := commentRoom(h); got != want {
			t.Errorf("commentRoom(%d) = %d, want %d", h, got, want)
		}
	}
}

func TestDonorScrollEmpty(t *testing.T) {
	env := newEnv(t, smallDonors)
	if seq := DonorScroll(env, nil); seq.Len() != 1 {
		t.Errorf("frames = %d, want 1", seq.Len())
	}
}

func TestDonorWall(t *testing.T) {
	env := newEnv(t, smallDonors)
	scroll := DonorScroll(env, testDonors())
	wall := DonorWall(context.Background(), env, scroll)
	if wall.Len() != scroll.Len() {
		t.Errorf("frames = %d, want %d", wall.Len(), scroll.Len())
	}
	if wall.Bounds() != image.Rect(0, 0, 240, 160) {
		t.Errorf("bounds = %v", wall.Bounds())
	}
	if wall.Delay != scroll.Delay {
		t.Errorf("delay = %v, want %v", wall.Delay, scroll.Delay)
	}
}

func TestPoster(t *testing.T) {
	env := newEnv(t, func(th *theme.Theme) {
		th.Poster.Width, th.Poster.Height, th.Poster.Frames = 640, 360, 2
		th.Poster.TitleSize, th.Poster.EventSize, th.Poster.CTASize = 40, 20, 16
		th.Poster.QRSize = 80
		th.Poster.SignupURL = "https://appleorchardcup.com/signup"
		th.Poster.Gradient = true
	})
	seq, err := Poster(context.Background(), env)
	if err != nil {
		t.Fatalf("Poster() error = %v", err)
	}
	if seq.Len() != 2 || seq.Bounds() != image.Rect(0, 0, 640, 360) {
		t.Fatalf("poster = %d frames, %v", seq.Len(), seq.Bounds())
	}
	// The QR quiet zone is white.
	if c := nrgbaAt(seq.Frames[0], 640-80-30+1, 360-80-30+1); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("qr corner = %v, want white", c)
	}
}

func TestPosterQRTooLong(t *testing.T) {
	env := newEnv(t, func(th *theme.Theme) {
		th.Poster.Width, th.Poster.Height, th.Poster.Frames = 320, 180, 1
		th.Poster.SignupURL = "https://example.com/" + strings.Repeat("a", 5000)
	})
	if _, err := Poster(context.Background(), env); err == nil {
		t.Error("expected error for oversized sign-up URL")
	}
}
