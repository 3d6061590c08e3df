package theme

import "github.com/matzehuels/orchard/pkg/layout"

func orchard() *Theme {
	return &Theme{
		Name: "orchard",
		Assets: Assets{
			Dir:            "assets",
			Logo:           "tournament_logo.png",
			Placeholder:    "apple.png",
			Background:     "bg.gif",
			BracketBack:    "sky.gif",
			WallBackground: "dono-wall.gif",
			Icons: map[string]string{
				"discord": "discord_logo.png",
				"twitch":  "twitch_logo.png",
				"twitter": "twitter_logo.png",
			},
		},
		Palette: Palette{
			Win:            MustHex("#FFCC66"),
			Loss:           MustHex("#FFB84D"),
			Text:           MustHex("#FAFAD2"),
			Box:            MustHex("#2c3e50"),
			Line:           MustHex("#000000"),
			Accent:         RGB(255, 140, 0),
			Gold:           MustHex("#FFD700"),
			Shadow:         RGBA(0, 0, 0, 150),
			BackgroundFrom: MustHex("#87CEEB"),
			BackgroundTo:   MustHex("#FFE4B5"),
		},
		Bracket: BracketTheme{
			Unit:      100,
			Width:     1920,
			Height:    1080,
			Columns:   append([]float64(nil), layout.BracketGrid.Columns...),
			Rows:      append([]float64(nil), layout.BracketGrid.Rows...),
			Shift:     layout.BracketGrid.Shift,
			LineWidth: 2.5,
			LogoSize:  2,
			Crop:      Insets{Left: 240, Top: 103, Right: 192, Bottom: 95},
			DelayMS:   100,
			Frames:    24,
		},
		Card: CardTheme{
			Width:      400,
			Height:     700,
			Face:       RGB(255, 255, 255),
			Pattern:    RGBA(255, 224, 102, 120),
			Name:       RGB(255, 128, 34),
			Panel:      RGB(50, 50, 50),
			Banner:     RGB(255, 224, 102),
			AvatarSize: 220,
			Stats: []Stat{
				{Name: "PPS", Max: 5, Color: RGB(255, 165, 0)},
				{Name: "APM", Max: 250, Color: RGB(255, 215, 0)},
				{Name: "VS", Max: 450, Color: RGB(255, 140, 0)},
				{Name: "AR", Max: 450, Color: RGB(255, 69, 0)},
			},
			Dots:         20,
			BackTitle:    []string{"APPLE", "ORCHARD CUP"},
			BackTop:      RGB(60, 60, 60),
			BackBottom:   RGB(44, 44, 44),
			PatternAlpha: 80,
			BorderWidth:  12,
			Radius:       20,
			LogoSize:     150,
			FlipFrames:   60,
			FlipSpeed:    4,
			FlipWidth:    1200,
			FlipHeight:   900,
			FlipDelayMS:  50,
		},
		Versus: VersusTheme{
			Text:         "VS",
			Size:         250,
			Glow:         10,
			ShadowOffset: 5,
			Width:        1920,
			Height:       1080,
			Frames:       24,
		},
		Commentary: CommentaryTheme{
			Title:      "COMMENTATORS",
			TitleSize:  64,
			Width:      1920,
			Height:     1080,
			AvatarSize: 270,
			NameSize:   45,
			SocialSize: 32,
			NameBox:    MustHex("#FFECB3"),
			SocialBox:  MustHex("#A2D9A2"),
			Ink:        MustHex("#333333"),
			LogoSize:   80,
		},
		Donors: DonorsTheme{
			Width:        800,
			Height:       400,
			EntryHeight:  110,
			Speed:        2,
			DelayMS:      50,
			NameSize:     28,
			CommentSize:  24,
			Background:   MustHex("#1A1E29"),
			Divider:      RGB(50, 50, 50),
			NameColor:    RGB(173, 216, 230),
			AmountColor:  RGB(144, 238, 144),
			CommentColor: RGB(211, 211, 211),
			Title:        "Donors",
			TitleSize:    36,
			WallScale:    0.8,
			WallAlpha:    180,
			WallX:        0,
			WallY:        50,
			WallWidth:    640,
			WallHeight:   400,
		},
		Poster: PosterTheme{
			Title:     "Apple Orchard Cup",
			Date:      "November 16, 2024 - 9:00 PM UTC",
			CTA:       "Sign up now at appleorchardcup.com",
			TitleSize: 200,
			EventSize: 80,
			CTASize:   70,
			Glow:      4,
			QRSize:    200,
			Width:     1920,
			Height:    1080,
			Frames:    24,
		},
	}
}

// midnight is the late-night stream variant: cool blues on dark slate.
func midnight() *Theme {
	t := orchard()
	t.Name = "midnight"
	t.Palette = Palette{
		Win:            MustHex("#8ECAE6"),
		Loss:           MustHex("#5FA8D3"),
		Text:           MustHex("#F1FAEE"),
		Box:            MustHex("#0B132B"),
		Line:           MustHex("#E0E1DD"),
		Accent:         MustHex("#3A86FF"),
		Gold:           MustHex("#FFD166"),
		Shadow:         RGBA(0, 0, 0, 180),
		BackgroundFrom: MustHex("#0B132B"),
		BackgroundTo:   MustHex("#3A506B"),
	}
	t.Card.Face = MustHex("#1C2541")
	t.Card.Pattern = RGBA(91, 192, 235, 90)
	t.Card.Name = MustHex("#8ECAE6")
	t.Card.Panel = MustHex("#0B132B")
	t.Card.Banner = MustHex("#5BC0EB")
	t.Card.BackTop = MustHex("#1C2541")
	t.Card.BackBottom = MustHex("#0B132B")
	t.Commentary.NameBox = MustHex("#CDE7F0")
	t.Commentary.SocialBox = MustHex("#9AD1D4")
	t.Commentary.Ink = MustHex("#0B132B")
	t.Donors.Background = MustHex("#0B132B")
	t.Poster.Gradient = true
	return t
}
