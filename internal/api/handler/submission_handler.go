package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/core/ports"
)

type SubmissionHandler struct {
	submissions ports.SubmissionService
}

func NewSubmissionHandler(submissions ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

type submissionRequest struct {
	TeamMemberName     string `json:"team_member_name" validate:"required"`
	ProjectName        string `json:"project_name"`
	SubmissionLink     string `json:"submission_link" validate:"required,url"`
	ProblemDescription string `json:"problem_description" validate:"required"`
	HoursSpent         int    `json:"hours_spent" validate:"gte=0"`
	ServicesUsed       string `json:"services_used"`
	GitRepoURL         string `json:"git_repo_url" validate:"omitempty,url"`
}

func (r submissionRequest) toInput() ports.SubmissionInput {
	return ports.SubmissionInput{
		TeamMemberName:     r.TeamMemberName,
		ProjectName:        r.ProjectName,
		SubmissionLink:     r.SubmissionLink,
		ProblemDescription: r.ProblemDescription,
		HoursSpent:         r.HoursSpent,
		ServicesUsed:       r.ServicesUsed,
		GitRepoURL:         r.GitRepoURL,
	}
}

// List returns every submission, optionally searched and sorted.
//
// @Summary      List submissions
// @Tags         submissions
// @Produce      json
// @Param        search  query  string  false  "Match team member, project or repo URL"
// @Param        sort    query  string  false  "created_at (default) or hours_spent"
// @Param        order   query  string  false  "asc or desc (default)"
// @Success      200  {array}  domain.Submission
// @Router       /submissions [get]
func (h *SubmissionHandler) List(c echo.Context) error {
	q := ports.ListSubmissionsQuery{
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sort"),
		Ascending: c.QueryParam("order") == "asc",
	}

	subs, err := h.submissions.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// Create adds a project submission (superadmin only).
//
// @Summary      Create a submission
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        body  body      submissionRequest  true  "Submission details"
// @Success      201   {object}  domain.Submission
// @Failure      400   {object}  map[string]string
// @Router       /submissions [post]
func (h *SubmissionHandler) Create(c echo.Context) error {
	var req submissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.submissions.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// Update replaces a submission's editable fields (superadmin only).
//
// @Summary      Update a submission
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Submission ID"
// @Param        body  body      submissionRequest  true  "Submission details"
// @Success      200   {object}  domain.Submission
// @Failure      404   {object}  map[string]string
// @Router       /submissions/{id} [put]
func (h *SubmissionHandler) Update(c echo.Context) error {
	var req submissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.submissions.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// Delete removes a submission and its votes (superadmin only).
//
// @Summary      Delete a submission
// @Tags         submissions
// @Param        id  path  string  true  "Submission ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /submissions/{id} [delete]
func (h *SubmissionHandler) Delete(c echo.Context) error {
	if err := h.submissions.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
