package protocol

// NotificationRequest is the refined argument set of a ShowNotification command.
type NotificationRequest struct {
	Sound   bool
	Title   string
	Message string
}

// ParseNotification reads ShowNotification arguments. Absent fields keep their
// zero values so bare requests still raise an empty notification.
func ParseNotification(args Arguments) (NotificationRequest, error) {
	var req NotificationRequest
	var err error

	if req.Sound, err = args.Bool("SoundOpt"); err != nil {
		return NotificationRequest{}, err
	}
	if req.Title, err = args.String("Title"); err != nil {
		return NotificationRequest{}, err
	}
	if req.Message, err = args.String("Message"); err != nil {
		return NotificationRequest{}, err
	}
	return req, nil
}
