package models

// Feature is a landing page selling point.
type Feature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Testimonial is a customer quote on the landing page.
type Testimonial struct {
	Quote  string `json:"quote" yaml:"quote"`
	Author string `json:"author" yaml:"author"`
	Role   string `json:"role" yaml:"role"`
	Image  string `json:"image" yaml:"image"`
}

// FormField describes one input of an account form.
type FormField struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// Form describes the sign-in or sign-up form layout. Forms are not submitted anywhere.
type Form struct {
	Name         string      `json:"name" yaml:"name"`
	Fields       []FormField `json:"fields" yaml:"fields"`
	SubmitLabel  string      `json:"submit_label" yaml:"submitLabel"`
	HelpLink     string      `json:"help_link,omitempty" yaml:"helpLink"`
	SwitchPrompt string      `json:"switch_prompt" yaml:"switchPrompt"`
	SwitchTarget string      `json:"switch_target" yaml:"switchTarget"`
}
