package http

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// MaxImageSize caps an uploaded team member photo
const MaxImageSize = 5 << 20

// TeamHandler handles team-related requests
type TeamHandler struct {
	service ports.WebsiteService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(service ports.WebsiteService) *TeamHandler {
	return &TeamHandler{
		service: service,
	}
}

// ListTeam godoc
// @Summary List team members in display order
// @Tags team
// @Produce json
// @Success 200 {array} entities.TeamMember
// @Failure 500 {object} ErrorResponse
// @Router /api/team [get]
func (h *TeamHandler) ListTeam(c echo.Context) error {
	team, err := h.service.ListTeam(c.Request().Context())
	if err != nil {
		return toHTTPError(err, MsgReadFailed)
	}

	return c.JSON(http.StatusOK, team)
}

// CreateTeamMember godoc
// @Summary Add a team member
// @Description Accepts JSON or multipart/form-data with an optional "image" file and social.<platform> fields
// @Tags team
// @Accept json,mpfd
// @Produce json
// @Param request body entities.NewTeamMember true "Member profile"
// @Success 201 {object} entities.TeamMember
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/team [post]
func (h *TeamHandler) CreateTeamMember(c echo.Context) error {
	var req entities.NewTeamMember

	if isMultipart(c) {
		update, err := bindMemberForm(c)
		if err != nil {
			return err
		}
		req = newMemberFromUpdate(update)
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}

	member, err := h.service.AddTeamMember(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	return c.JSON(http.StatusCreated, member)
}

// UpdateTeamMember godoc
// @Summary Update a team member
// @Description Only the provided fields change. Accepts JSON or multipart/form-data.
// @Tags team
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Member ID"
// @Param request body entities.TeamMemberUpdate true "Fields to change"
// @Success 200 {object} entities.TeamMember
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/team/{id} [put]
func (h *TeamHandler) UpdateTeamMember(c echo.Context) error {
	memberID, err := parseID(c, "team member")
	if err != nil {
		return err
	}

	var req entities.TeamMemberUpdate
	if isMultipart(c) {
		if req, err = bindMemberForm(c); err != nil {
			return err
		}
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}

	member, err := h.service.UpdateTeamMember(c.Request().Context(), memberID, req)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	return c.JSON(http.StatusOK, member)
}

// DeleteTeamMember godoc
// @Summary Remove a team member
// @Tags team
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} entities.TeamMember
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/team/{id} [delete]
func (h *TeamHandler) DeleteTeamMember(c echo.Context) error {
	memberID, err := parseID(c, "team member")
	if err != nil {
		return err
	}

	member, err := h.service.DeleteTeamMember(c.Request().Context(), memberID)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	return c.JSON(http.StatusOK, member)
}

// MoveTeamMember godoc
// @Summary Move a team member to another position
// @Tags team
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param request body ports.MoveTeamMemberRequest true "Zero-based target position"
// @Success 200 {array} entities.TeamMember
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/team/{id}/move [post]
func (h *TeamHandler) MoveTeamMember(c echo.Context) error {
	memberID, err := parseID(c, "team member")
	if err != nil {
		return err
	}

	var req ports.MoveTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	team, err := h.service.MoveTeamMember(c.Request().Context(), memberID, *req.Position)
	if err != nil {
		return toHTTPError(err, MsgWriteFailed)
	}

	return c.JSON(http.StatusOK, team)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// bindMemberForm reads a member from form fields. Absent fields stay nil so the
// result works for both creation and partial updates.
func bindMemberForm(c echo.Context) (entities.TeamMemberUpdate, error) {
	var req entities.TeamMemberUpdate

	form, err := c.MultipartForm()
	if err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}

	value := func(key string) *string {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			v := strings.TrimSpace(vs[0])
			return &v
		}
		return nil
	}

	req.Name = value("name")
	req.Role = value("role")
	req.Bio = value("bio")
	if image := value("image"); image != nil && *image != "" {
		req.Image = image
	}

	if exp := value("experience"); exp != nil {
		years, err := strconv.ParseFloat(*exp, 64)
		if err != nil {
			return req, toHTTPError(entities.ValidationErrors{{Field: "experience", Reason: "must be a number"}}, MsgInvalidRequest)
		}
		y := entities.Years(years)
		req.Experience = &y
	}

	for key, vs := range form.Value {
		platform, ok := strings.CutPrefix(key, "social.")
		if !ok || len(vs) == 0 {
			continue
		}
		if req.Social == nil {
			req.Social = make(map[string]string)
		}
		req.Social[platform] = strings.TrimSpace(vs[0])
	}

	if files := form.File["image"]; len(files) > 0 {
		data, err := readImage(files[0])
		if err != nil {
			return req, err
		}
		req.ImageData = data
	}

	return req, nil
}

func readImage(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > MaxImageSize {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Image must be 5MB or smaller")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest).SetInternal(err)
	}
	if len(data) > MaxImageSize {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Image must be 5MB or smaller")
	}
	if len(data) == 0 {
		return nil, nil
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Uploaded file is not an image")
	}

	return data, nil
}

func newMemberFromUpdate(u entities.TeamMemberUpdate) entities.NewTeamMember {
	m := entities.NewTeamMember{
		ImageData: u.ImageData,
		Social:    u.Social,
	}
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Role != nil {
		m.Role = *u.Role
	}
	if u.Experience != nil {
		m.Experience = *u.Experience
	}
	if u.Bio != nil {
		m.Bio = *u.Bio
	}
	if u.Image != nil {
		m.Image = *u.Image
	}
	return m
}
