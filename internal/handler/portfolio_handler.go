package handler

import (
	"net/http"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/portfolio"
)

// PortfolioHandler serves the static catalog as JSON.
type PortfolioHandler struct {
	catalog *portfolio.Catalog
}

func NewPortfolioHandler(catalog *portfolio.Catalog) *PortfolioHandler {
	return &PortfolioHandler{catalog: catalog}
}

type portfolioResponse struct {
	Profile    portfolio.Profile         `json:"profile"`
	Skills     []portfolio.SkillCategory `json:"skills"`
	Categories []string                  `json:"categories"`
	Projects   []portfolio.Project       `json:"projects"`
}

// Get handles GET /api/portfolio. An optional category query parameter
// narrows the project list the same way the site's filter does.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	projects := h.catalog.ProjectsIn(r.URL.Query().Get("category"))
	if projects == nil {
		projects = []portfolio.Project{}
	}
	writeJSON(w, http.StatusOK, portfolioResponse{
		Profile:    h.catalog.Profile,
		Skills:     h.catalog.Skills,
		Categories: h.catalog.Categories(),
		Projects:   projects,
	})
}
