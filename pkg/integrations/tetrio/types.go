package tetrio

import "strings"

type envelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Msg string `json:"msg"`
	} `json:"error,omitempty"`
}

type userResponse struct {
	envelope
	Data userData `json:"data"`
}

type userData struct {
	ID             string                    `json:"_id"`
	Username       string                    `json:"username"`
	Country        *string                   `json:"country"`
	AR             float64                   `json:"ar"`
	AvatarRevision int64                     `json:"avatar_revision"`
	Connections    map[string]connectionData `json:"connections"`
}

type connectionData struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	DisplayUsername string `json:"display_username"`
}

func (d userData) user() User {
	u := User{
		ID:             d.ID,
		Username:       d.Username,
		AR:             d.AR,
		AvatarRevision: d.AvatarRevision,
	}
	if d.Country != nil {
		u.Country = strings.ToLower(*d.Country)
	}
	for _, svc := range socialOrder {
		conn, ok := d.Connections[svc]
		if !ok {
			continue
		}
		name := conn.DisplayUsername
		if name == "" {
			name = conn.Username
		}
		u.Socials = append(u.Socials, Social{Service: svc, Name: name})
		if len(u.Socials) == MaxSocials {
			break
		}
	}
	return u
}

type leagueResponse struct {
	envelope
	Data leagueData `json:"data"`
}

type leagueData struct {
	TR   float64 `json:"tr"`
	Rank string  `json:"rank"`
	PPS  float64 `json:"pps"`
	APM  float64 `json:"apm"`
	VS   float64 `json:"vs"`
}

func (d leagueData) league() League {
	return League{
		TR:   roundTo(d.TR, 0),
		Rank: strings.ToLower(d.Rank),
		PPS:  roundTo(d.PPS, 2),
		APM:  roundTo(d.APM, 0),
		VS:   roundTo(d.VS, 0),
	}
}
