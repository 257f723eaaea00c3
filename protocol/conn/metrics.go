package conn

import "github.com/VictoriaMetrics/metrics"

var (
	requestsTotal        = metrics.NewCounter(`hllrcon_requests_total`)
	requestErrorsTotal   = metrics.NewCounter(`hllrcon_request_errors_total`)
	requestTimeoutsTotal = metrics.NewCounter(`hllrcon_request_timeouts_total`)
	handshakesTotal      = metrics.NewCounter(`hllrcon_handshakes_total`)
	connectionsLostTotal = metrics.NewCounter(`hllrcon_connections_lost_total`)
	decodeErrorsTotal    = metrics.NewCounter(`hllrcon_decode_errors_total`)
	droppedFramesTotal   = metrics.NewCounter(`hllrcon_dropped_frames_total`)
	droppedNotifsTotal   = metrics.NewCounter(`hllrcon_dropped_notifications_total`)
)
