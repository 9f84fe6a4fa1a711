package http

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// parseRouteQuery reads and validates crns, day and the optional surface size.
// An unrecognized or missing day falls back to Monday.
func parseRouteQuery(c *fiber.Ctx, deps *Dependencies) (crns []string, day time.Weekday, width, height int, err error) {
	var q routeQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid query: %v", err)
	}
	if err := validate.Struct(q); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("%s", validationMessage(err))
	}

	crns = domain.ParseCRNs(q.CRNs)
	if len(crns) == 0 {
		return nil, 0, 0, 0, fmt.Errorf("crns must contain at least one CRN")
	}

	l := deps.limits()
	width, height = q.Width, q.Height
	if width == 0 {
		width = l.DefaultWidth
	}
	if height == 0 {
		height = l.DefaultHeight
	}
	if width > l.MaxWidth || height > l.MaxHeight {
		return nil, 0, 0, 0, fmt.Errorf("map size must not exceed %dx%d", l.MaxWidth, l.MaxHeight)
	}
	return crns, domain.ParseWeekday(q.Day), width, height, nil
}

// ListBuildingsHandler returns every known building in registration order.
func ListBuildingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildings := deps.Buildings.All()
		if buildings == nil {
			buildings = []*domain.Building{}
		}
		return c.JSON(buildings)
	}
}

// GetBuildingHandler returns a single building by code. Codes are case-sensitive.
func GetBuildingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := url.PathUnescape(c.Params("code"))
		if err != nil || code == "" {
			return errBadRequest(c, "building code is required")
		}
		b, ok := deps.Buildings.Get(code)
		if !ok {
			return errNotFound(c, "building not found")
		}
		return c.JSON(b)
	}
}

// GetOfferingHandler returns one offering with its sessions.
func GetOfferingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		crn := c.Params("crn")
		if crn == "" {
			return errBadRequest(c, "crn is required")
		}
		o, err := deps.Schedule.Offering(c.UserContext(), crn)
		if err != nil {
			return errFromDomain(c, err, "")
		}
		return c.JSON(toOffering(o))
	}
}

// ListCoursesHandler pages through distinct course codes or titles.
func ListCoursesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := listQuery{Field: "codes", Limit: 100}
		if err := c.QueryParser(&q); err != nil {
			return errBadRequest(c, "invalid query")
		}
		if err := validate.Struct(q); err != nil {
			return errBadRequest(c, validationMessage(err))
		}

		var (
			items []string
			err   error
		)
		if q.Field == "titles" {
			items, err = deps.Schedule.ListCourseTitles(c.UserContext())
		} else {
			items, err = deps.Schedule.ListCourseCodes(c.UserContext())
		}
		if err != nil {
			return errFromDomain(c, err, "")
		}

		page, pg := paginate(items, q.Offset, q.Limit)
		SetLinkHeaders(c, pg, url.Values{"field": {q.Field}})
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// ItineraryHandler returns the chronologically ordered sessions for crns on day.
// A day without sessions is an empty itinerary, not an error.
func ItineraryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		crns, day, _, _, err := parseRouteQuery(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		it, missing, err := deps.Schedule.DailyItinerary(c.UserContext(), crns, day)
		if err != nil {
			return errFromDomain(c, err, day.String())
		}
		if len(missing) > 0 {
			c.Set("X-Missing-CRNs", strings.Join(missing, ","))
		}
		return c.JSON(toItinerary(it, day, missing))
	}
}

// RouteHandler plans the walking route for crns on day and returns the model.
func RouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		crns, day, _, _, err := parseRouteQuery(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		plan, err := deps.Visualization.Plan(c.UserContext(), crns, day)
		if err != nil {
			return errFromDomain(c, err, day.String())
		}
		if len(plan.MissingCRNs) > 0 {
			c.Set("X-Missing-CRNs", strings.Join(plan.MissingCRNs, ","))
		}
		return c.JSON(toRoute(plan))
	}
}

// RouteMapHandler renders the route onto the campus map as PNG.
func RouteMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		crns, day, width, height, err := parseRouteQuery(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		png, err := deps.Visualization.RenderPNG(c.UserContext(), crns, day, width, height)
		if err != nil {
			return errFromDomain(c, err, day.String())
		}
		c.Set(fiber.HeaderContentType, "image/png")
		c.Set("Cache-Control", "public, max-age=300")
		return c.Send(png)
	}
}
