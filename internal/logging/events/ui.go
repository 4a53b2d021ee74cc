package events

import "github.com/atomicstack/movie-booth/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type BookingTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Booking = BookingTracer{}
)

func (UITracer) Panel(panel string) {
	logging.Trace("ui.panel", map[string]interface{}{"panel": panel})
}

func (UITracer) Sort(order string) {
	logging.Trace("ui.sort", map[string]interface{}{"order": order})
}

func (UITracer) Cursor(list string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"list": list, "cursor": cursor})
}

func (UITracer) Dismiss(message string) {
	logging.Trace("ui.dismiss", map[string]interface{}{"message": message})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Set(list, filter string) {
	logging.Trace("filter.set", map[string]interface{}{"list": list, "filter": filter})
}

func (FilterTracer) Cleared(list string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": list})
}

func (BookingTracer) Launch(customerID, roomID, movieID int) {
	logging.Trace("booking.launch", map[string]interface{}{"customer": customerID, "room": roomID, "movie": movieID})
}

func (BookingTracer) NoRoom(movieID int, title string) {
	logging.Trace("booking.no-room", map[string]interface{}{"movie": movieID, "title": title})
}
