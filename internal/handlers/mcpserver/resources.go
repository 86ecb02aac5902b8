package mcpserver

import (
	"context"
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resource URIs
const (
	CommonDiceURI  = "dice://common-dice"
	ProbabilityURI = "dice://probability"
)

const textMIME = "text/plain"

var (
	//go:embed content/common_dice.txt
	commonDiceText string

	//go:embed content/probability.txt
	probabilityText string
)

// CommonDiceResource describes dice://common-dice
func CommonDiceResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         CommonDiceURI,
		Name:        "common-dice",
		Title:       "Common Dice",
		Description: "Common dice types and notation",
		MIMEType:    textMIME,
	}
}

// ProbabilityResource describes dice://probability
func ProbabilityResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         ProbabilityURI,
		Name:        "probability",
		Title:       "Dice Probability",
		Description: "Dice probability basics",
		MIMEType:    textMIME,
	}
}

func registerResources(server *mcp.Server) {
	server.AddResource(CommonDiceResource(), staticText(commonDiceText))
	server.AddResource(ProbabilityResource(), staticText(probabilityText))
}

func staticText(text string) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: textMIME,
				Text:     text,
			}},
		}, nil
	}
}
