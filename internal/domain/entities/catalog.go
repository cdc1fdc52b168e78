package entities

// Company describes the agency itself
type Company struct {
	Name         string `json:"name" yaml:"name"`
	Tagline      string `json:"tagline" yaml:"tagline"`
	Description  string `json:"description" yaml:"description"`
	Established  string `json:"established" yaml:"established"`
	Projects     string `json:"projects" yaml:"projects"`
	Clients      string `json:"clients" yaml:"clients"`
	Satisfaction string `json:"satisfaction" yaml:"satisfaction"`
}

type NavItem struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Service is one offering on the services page
type Service struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
	Features    []string `json:"features" yaml:"features"`
	Price       string   `json:"price" yaml:"price"`
	Timeline    string   `json:"timeline" yaml:"timeline"`
	Color       string   `json:"color" yaml:"color"`
}

// Plan is a subscription tier an order can reference
type Plan struct {
	ID               int      `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Price            float64  `json:"price" yaml:"price"`
	Period           string   `json:"period" yaml:"period"`
	Description      string   `json:"description" yaml:"description"`
	Features         []string `json:"features" yaml:"features"`
	FeaturesIncluded []string `json:"featuresIncluded" yaml:"featuresIncluded"`
	Popular          bool     `json:"popular" yaml:"popular"`
	Color            string   `json:"color" yaml:"color"`
}

type Contact struct {
	Email   string            `json:"email" yaml:"email"`
	Phone   string            `json:"phone" yaml:"phone"`
	Address string            `json:"address" yaml:"address"`
	Social  map[string]string `json:"social" yaml:"social"`
}

type Testimonial struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Company string `json:"company" yaml:"company"`
	Rating  int    `json:"rating" yaml:"rating"`
	Text    string `json:"text" yaml:"text"`
	Image   string `json:"image" yaml:"image"`
}

// Catalog is the read-only reference content bundled with the site
type Catalog struct {
	Company       Company           `json:"company" yaml:"company"`
	Navigation    []NavItem         `json:"navigation" yaml:"navigation"`
	Services      []Service         `json:"services" yaml:"services"`
	Subscriptions map[string][]Plan `json:"subscriptions" yaml:"subscriptions"`
	Contact       Contact           `json:"contact" yaml:"contact"`
	Testimonials  []Testimonial     `json:"testimonials" yaml:"testimonials"`
}

// Plan looks a plan up by id across every category
func (c *Catalog) Plan(id int) (Plan, bool) {
	for _, plans := range c.Subscriptions {
		for _, plan := range plans {
			if plan.ID == id {
				return plan, true
			}
		}
	}
	return Plan{}, false
}
