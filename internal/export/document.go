package export

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physics3/internal/physics3"
)

// JSON writes doc in its external shape, indented by indent spaces.
// An indent of 0 produces compact output.
func JSON(w io.Writer, doc *physics3.Physics3, indent int) error {
	if indent < 0 {
		indent = 0
	}
	return physics3.Encode(w, doc, strings.Repeat(" ", indent))
}

// YAML renders doc as block-style YAML using the same keys, in the same
// order, as the JSON form.
func YAML(doc *physics3.Physics3) ([]byte, error) {
	data, err := physics3.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	blockStyle(&node)

	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		n.Style &^= yaml.FlowStyle
	case yaml.ScalarNode:
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
