package tracking

import "time"

func (c *Client) Timeout() time.Duration {
	return c.timeout
}
