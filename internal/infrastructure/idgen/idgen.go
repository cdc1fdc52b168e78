// Package idgen issues order ids.
//
// Ids are snowflakes laid out as 41+ bits of milliseconds since 2024-01-01,
// 3 node bits and 9 sequence bits. Keeping node and sequence at 12 bits
// holds every id under 2^53 for decades, so browsers read them exactly.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
)

const (
	epochMillis = 1704067200000 // 2024-01-01T00:00:00Z
	nodeBits    = 3
	stepBits    = 9

	// MaxNode is the highest node id a generator may use.
	MaxNode = 1<<nodeBits - 1
)

func init() {
	snowflake.Epoch = epochMillis
	snowflake.NodeBits = nodeBits
	snowflake.StepBits = stepBits
}

// Snowflake generates time-ordered ids that never repeat within a node
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator for the given node
func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 || node > MaxNode {
		return nil, fmt.Errorf("id node must be between 0 and %d, got %d", MaxNode, node)
	}

	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("failed to create id node: %w", err)
	}

	return &Snowflake{node: n}, nil
}

// Next returns a fresh id
func (s *Snowflake) Next() entities.ID {
	return entities.ID(s.node.Generate().Int64())
}
