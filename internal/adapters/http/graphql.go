package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CampusCoordinate",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
		},
	})

	buildingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Building",
		Fields: graphql.Fields{
			"code":     &graphql.Field{Type: graphql.String},
			"name":     &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: coordinateType},
		},
	})

	courseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Course",
		Fields: graphql.Fields{
			"code":       &graphql.Field{Type: graphql.String},
			"title":      &graphql.Field{Type: graphql.String},
			"department": &graphql.Field{Type: graphql.String},
		},
	})

	sessionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Session",
		Fields: graphql.Fields{
			"day":      &graphql.Field{Type: graphql.String},
			"start":    &graphql.Field{Type: graphql.String},
			"end":      &graphql.Field{Type: graphql.String},
			"activity": &graphql.Field{Type: graphql.String},
			"building": &graphql.Field{Type: graphql.String},
			"room":     &graphql.Field{Type: graphql.String},
			"floor":    &graphql.Field{Type: graphql.Int},
		},
	})

	offeringType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Offering",
		Fields: graphql.Fields{
			"crn":           &graphql.Field{Type: graphql.String},
			"section":       &graphql.Field{Type: graphql.String},
			"delivery_mode": &graphql.Field{Type: graphql.String},
			"course":        &graphql.Field{Type: courseType},
			"instructor": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if o, ok := p.Source.(offeringResponse); ok && o.Instructor != nil {
						return o.Instructor.Name, nil
					}
					return nil, nil
				},
			},
			"sessions": &graphql.Field{Type: graphql.NewList(sessionType)},
		},
	})

	segmentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Segment",
		Fields: graphql.Fields{
			"from":            &graphql.Field{Type: graphql.String},
			"to":              &graphql.Field{Type: graphql.String},
			"distance_meters": &graphql.Field{Type: graphql.Float},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"day":                   &graphql.Field{Type: graphql.String},
			"stops":                 &graphql.Field{Type: graphql.NewList(buildingType)},
			"segments":              &graphql.Field{Type: graphql.NewList(segmentType)},
			"total_distance_meters": &graphql.Field{Type: graphql.Float},
			"summary":               &graphql.Field{Type: graphql.NewList(graphql.String)},
			"missing_crns":          &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"buildings": &graphql.Field{
				Type:        graphql.NewList(buildingType),
				Description: "List all campus buildings",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Buildings.All(), nil
				},
			},
			"building": &graphql.Field{
				Type:        buildingType,
				Description: "Get a building by code",
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					b, ok := deps.Buildings.Get(p.Args["code"].(string))
					if !ok {
						return nil, nil
					}
					return b, nil
				},
			},
			"offering": &graphql.Field{
				Type:        offeringType,
				Description: "Get an offering by CRN",
				Args: graphql.FieldConfigArgument{
					"crn": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o, err := deps.Schedule.Offering(p.Context, p.Args["crn"].(string))
					if err != nil {
						return nil, err
					}
					return toOffering(o), nil
				},
			},
			"courseCodes": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Distinct course codes, sorted",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Schedule.ListCourseCodes(p.Context)
				},
			},
			"route": &graphql.Field{
				Type:        routeType,
				Description: "Plan the walking route between a day's sessions",
				Args: graphql.FieldConfigArgument{
					"crns": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"day":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "Monday"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					crns := domain.ParseCRNs(p.Args["crns"].(string))
					dayArg, _ := p.Args["day"].(string)
					day := domain.ParseWeekday(dayArg)
					plan, err := deps.Visualization.Plan(p.Context, crns, day)
					if err != nil {
						return nil, err
					}
					return toRoute(plan), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
