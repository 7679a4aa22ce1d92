package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

type VoteHandler struct {
	votes ports.VoteService
}

func NewVoteHandler(votes ports.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

type castVoteRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=10"`
	Remarks string `json:"remarks"`
}

// Cast records the calling judge's rating for a submission. Voting again
// replaces the earlier rating and remarks.
//
// @Summary      Cast or update a vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Submission ID"
// @Param        body  body      castVoteRequest  true  "Rating 1 to 10 with optional remarks"
// @Success      200   {object}  domain.Vote
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /submissions/{id}/votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vote, err := h.votes.Cast(c.Request().Context(), ports.CastVoteInput{
		SubmissionID: c.Param("id"),
		JudgeID:      sess.UserID,
		JudgeName:    sess.Name,
		Rating:       req.Rating,
		Remarks:      req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vote)
}

// List returns the caller's votes; superadmins see every judge's votes.
//
// @Summary      List votes
// @Tags         votes
// @Produce      json
// @Success      200  {array}  domain.Vote
// @Router       /votes [get]
func (h *VoteHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if sess.Role == domain.RoleSuperadmin {
		votes, err := h.votes.ListAll(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, votes)
	}

	votes, err := h.votes.ListByJudge(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, votes)
}
