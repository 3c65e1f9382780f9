package mcp

import "github.com/mark3labs/mcp-go/mcp"

var findCourseSectionsTool = mcp.NewTool("find_course_sections",
	mcp.WithDescription("Find the three course sections most relevant to a natural language request. "+
		"Year level, weekday and subject mentioned in the query are applied as filters."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Free-text request, e.g. \"second year computer science on tuesdays\""),
	),
	mcp.WithNumber("pool",
		mcp.Description("Number of nearest candidates considered before filtering (default 100)"),
	),
)

var explainQueryTool = mcp.NewTool("explain_query",
	mcp.WithDescription("Show the filters extracted from a query and the text that is sent to the embedding model."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Free-text request to analyse"),
	),
)
