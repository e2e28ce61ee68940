package handlers

import (
	"net/http"
	"strings"

	"outreach/internal/models"
	"outreach/internal/research"
	"outreach/internal/session"

	"github.com/labstack/echo/v4"
)

// TagsResponse holds the tags found in a research summary, the same tags
// grouped by category and the highlighted segments of its text
type TagsResponse struct {
	Tags       []research.Tag                       `json:"tags"`
	ByCategory map[research.Category][]research.Tag `json:"by_category"`
	Segments   []research.Segment                   `json:"segments"`
}

// TagsHandler extracts research tags from arbitrary text
// @Summary Extract research tags
// @Tags research
// @Accept json
// @Produce json
// @Param request body models.TagRequest true "Research text"
// @Success 200 {object} TagsResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/research/tags [post]
func TagsHandler(controller *session.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.TagRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if strings.TrimSpace(req.Text) == "" {
			return badRequest(c, "Text is required")
		}

		tags := controller.Tags(req.Text)
		return c.JSON(http.StatusOK, TagsResponse{
			Tags:       tags,
			ByCategory: research.ByCategory(tags),
			Segments:   research.Highlight(req.Text, tags),
		})
	}
}
