package members

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kashidashi/kashidashi/pkg/errcodes"
	"github.com/kashidashi/kashidashi/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	memberService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateMemberPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// The email is unique across members.
	_, err := h.memberService.RetrieveMember(ctx, RetrieveMemberOptions{Email: &params.Email})
	if err == nil {
		return errcodes.Conflict(fmt.Sprintf("Member with email %s already exists.", params.Email))
	}
	if !errors.Is(err, errcodes.NotFound("Member")) {
		return errors.WithStack(err)
	}

	active := true
	if params.Active != nil {
		active = *params.Active
	}

	member := &models.Member{
		FirstName:        params.FirstName,
		LastName:         params.LastName,
		Email:            params.Email,
		Phone:            params.Phone,
		Address:          params.Address,
		RegistrationDate: params.RegistrationDate,
		Active:           active,
	}

	if err := h.memberService.CreateMember(ctx, member); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, member))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Member")
	}

	member, err := h.memberService.RetrieveMember(ctx, RetrieveMemberOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, member))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListMembersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	members, err := h.memberService.ListMembers(ctx, ListMembersOptions{
		Limit:  &params.Limit,
		Offset: &params.Skip,
		Name:   params.Name,
		Active: params.Active,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, members))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Member")
	}

	// Bind params.
	params := UpdateMemberPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the member.
	member, err := h.memberService.RetrieveMember(ctx, RetrieveMemberOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateMemberOptions{Columns: []string{}}

	if params.FirstName != nil && *params.FirstName != member.FirstName {
		member.FirstName = *params.FirstName
		opts.Columns = append(opts.Columns, "first_name")
	}
	if params.LastName != nil && *params.LastName != member.LastName {
		member.LastName = *params.LastName
		opts.Columns = append(opts.Columns, "last_name")
	}
	if params.Email != nil && *params.Email != member.Email {
		// The new email can't collide with another member.
		_, err := h.memberService.RetrieveMember(ctx, RetrieveMemberOptions{Email: params.Email})
		if err == nil {
			return errcodes.Conflict(fmt.Sprintf("Member with email %s already exists.", *params.Email))
		}
		if !errors.Is(err, errcodes.NotFound("Member")) {
			return errors.WithStack(err)
		}
		member.Email = *params.Email
		opts.Columns = append(opts.Columns, "email")
	}
	if params.Phone != nil {
		member.Phone = params.Phone
		opts.Columns = append(opts.Columns, "phone")
	}
	if params.Address != nil {
		member.Address = params.Address
		opts.Columns = append(opts.Columns, "address")
	}
	if params.Active != nil && *params.Active != member.Active {
		member.Active = *params.Active
		opts.Columns = append(opts.Columns, "active")
	}

	// Update the model.
	err = h.memberService.UpdateMember(ctx, member, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	member, err = h.memberService.RetrieveMember(ctx, RetrieveMemberOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, member))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Member")
	}

	member, err := h.memberService.DeleteMember(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, member))
}
