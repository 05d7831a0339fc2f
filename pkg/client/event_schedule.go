package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"studiodesk/pkg/model"
)

type EventScheduleQuery struct {
	Page        int
	PageSize    int
	EventTypeID string
}

func (q EventScheduleQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.EventTypeID != "" {
		v.Set("eventTypeId", q.EventTypeID)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type EventScheduleClient struct {
	httpClient *HttpClient
	loc        *time.Location
}

func NewEventScheduleClient(httpClient *HttpClient, loc *time.Location) *EventScheduleClient {
	return &EventScheduleClient{httpClient: httpClient, loc: loc}
}

func (c *EventScheduleClient) GetAll(ctx context.Context, companyID string, query EventScheduleQuery) (*model.Paginated[*model.EventSchedule], error) {
	path := "/api/EventSchedule/" + url.PathEscape(companyID) + query.encode()
	var page pageDTO[eventScheduleDTO]
	if err := c.httpClient.getJSON(ctx, path, &page); err != nil {
		return nil, err
	}
	items := convertAll(page.Items, c.loc, c.httpClient.Log, eventScheduleDTO.toModel)
	return &model.Paginated[*model.EventSchedule]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, nil
}

type EventTypeClient struct {
	httpClient *HttpClient
}

func NewEventTypeClient(httpClient *HttpClient) *EventTypeClient {
	return &EventTypeClient{httpClient: httpClient}
}

func (c *EventTypeClient) GetAll(ctx context.Context, companyID string) ([]*model.EventType, error) {
	var page pageDTO[*model.EventType]
	if err := c.httpClient.getJSON(ctx, "/api/EventType/"+url.PathEscape(companyID), &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}
