package email

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// md renders without the unsafe option, so raw HTML in the source is dropped.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderMarkdown converts markdown source to HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WelcomeEmail builds the message sent after registration.
// PRE: to is a normalised address
func WelcomeEmail(to, name string) (SendRequest, error) {
	if name == "" {
		name = "golfer"
	}
	body := fmt.Sprintf(`# Welcome to Fairway, %s

Your account is ready. Log your range sessions by club and the dashboard will track:

- carry and total distance per club
- dispersion and fairway hits off the tee
- putting make rates at 1m, 1.5m and 2m

See you on the range.`, name)

	html, err := RenderMarkdown(body)
	if err != nil {
		return SendRequest{}, err
	}
	return SendRequest{
		To:      []string{to},
		Subject: "Welcome to Fairway",
		HTML:    html,
	}, nil
}
