package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"studiodesk/pkg/model"
)

type ReservationClient struct {
	httpClient *HttpClient
	loc        *time.Location
}

func NewReservationClient(httpClient *HttpClient, loc *time.Location) *ReservationClient {
	return &ReservationClient{httpClient: httpClient, loc: loc}
}

func (c *ReservationClient) GetAll(ctx context.Context, companyID string, page, pageSize int) (*model.Paginated[*model.Reservation], error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("pageSize", strconv.Itoa(pageSize))
	}
	path := "/api/Reservation/" + url.PathEscape(companyID)
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var dto pageDTO[reservationDTO]
	if err := c.httpClient.getJSON(ctx, path, &dto); err != nil {
		return nil, err
	}
	items := convertAll(dto.Items, c.loc, c.httpClient.Log, reservationDTO.toModel)
	return &model.Paginated[*model.Reservation]{
		Items:      items,
		TotalCount: dto.TotalCount,
		Page:       dto.Page,
		PageSize:   dto.PageSize,
	}, nil
}

func (c *ReservationClient) MarkAsPaid(ctx context.Context, companyID, id string) error {
	_, err := c.httpClient.send(ctx, http.MethodPatch, reservationPath(companyID, id)+"/markAsPaid", nil)
	return err
}

func (c *ReservationClient) UnmarkAsPaid(ctx context.Context, companyID, id string) error {
	_, err := c.httpClient.send(ctx, http.MethodPatch, reservationPath(companyID, id)+"/unmarkAsPaid", nil)
	return err
}

func reservationPath(companyID, id string) string {
	return "/api/Reservation/" + url.PathEscape(companyID) + "/" + url.PathEscape(id)
}
