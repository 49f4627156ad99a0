package id

import (
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// New returns a process-unique snowflake ID. The node number comes from
// API_SERVER_NODE_ID so multiple instances never collide.
func New() int64 {
	once.Do(func() {
		nodeID := int64(1)
		if raw := os.Getenv("API_SERVER_NODE_ID"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				slog.Warn("invalid API_SERVER_NODE_ID, using default", "value", raw)
			} else {
				nodeID = parsed
			}
		}

		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
		node = n
	})

	return node.Generate().Int64()
}
