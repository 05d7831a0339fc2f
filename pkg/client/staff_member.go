package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"studiodesk/pkg/model"
)

type StaffMemberClient struct {
	httpClient *HttpClient
	loc        *time.Location
}

func NewStaffMemberClient(httpClient *HttpClient, loc *time.Location) *StaffMemberClient {
	return &StaffMemberClient{httpClient: httpClient, loc: loc}
}

func availabilityPath(companyID, id string) string {
	return "/api/StaffMember/" + url.PathEscape(companyID) + "/availability/" + url.PathEscape(id)
}

// GetAvailability lists a staff member's availability slots.
func (c *StaffMemberClient) GetAvailability(ctx context.Context, companyID, staffMemberID string) (*model.StaffAvailability, error) {
	var dto staffAvailabilityDTO
	if err := c.httpClient.getJSON(ctx, availabilityPath(companyID, staffMemberID), &dto); err != nil {
		return nil, err
	}
	slots := convertAll(dto.AvailableSlots, c.loc, c.httpClient.Log, availabilityDTO.toModel)
	return &model.StaffAvailability{StaffMember: dto.StaffMember, AvailableSlots: slots}, nil
}

// AddAvailability submits a new slot. The created slot is returned when the
// API echoes it back, nil otherwise.
func (c *StaffMemberClient) AddAvailability(ctx context.Context, companyID, staffMemberID string, req model.AvailabilityRequest) (*model.AvailabilitySlot, error) {
	resp, err := c.httpClient.send(ctx, http.MethodPost, availabilityPath(companyID, staffMemberID), req)
	if err != nil {
		return nil, err
	}
	var dto availabilityDTO
	if err := resp.DecodeJSON(&dto); err != nil || dto.ID == "" {
		return nil, nil
	}
	slot, err := dto.toModel(c.loc)
	if err != nil {
		return nil, nil
	}
	return slot, nil
}

func (c *StaffMemberClient) RemoveAvailability(ctx context.Context, companyID, availabilityID string) error {
	_, err := c.httpClient.send(ctx, http.MethodDelete, availabilityPath(companyID, availabilityID), nil)
	return err
}

// GetEventSchedules lists the classes a trainer is assigned to.
func (c *StaffMemberClient) GetEventSchedules(ctx context.Context, companyID, staffMemberID string) ([]*model.EventSchedule, error) {
	path := fmt.Sprintf("/api/StaffMember/%s/eventSchedules/%s", url.PathEscape(companyID), url.PathEscape(staffMemberID))
	var page pageDTO[eventScheduleDTO]
	if err := c.httpClient.getJSON(ctx, path, &page); err != nil {
		return nil, err
	}
	schedules := convertAll(page.Items, c.loc, c.httpClient.Log, eventScheduleDTO.toModel)
	return schedules, nil
}
