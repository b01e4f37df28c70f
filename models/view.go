package models

// View names one of the two screens of the app
type View string

const (
	ViewInput   View = "input"
	ViewPreview View = "preview"
)

// Path returns the route serving the view
func (v View) Path() string {
	if v == ViewPreview {
		return "/card"
	}
	return "/"
}
