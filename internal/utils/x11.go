package utils

import (
	"errors"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window

	xMu sync.Mutex
)

var ErrNoScreen = errors.New("x11: no default screen")

func InitX11() error {
	xMu.Lock()
	defer xMu.Unlock()

	if XConn != nil {
		return nil
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return ErrNoScreen
	}

	XConn = conn
	XRoot = screen.Root
	return nil
}

// CloseX11 drops the shared X connection, if any.
func CloseX11() {
	xMu.Lock()
	defer xMu.Unlock()

	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}

// GetRootSize returns the pixel size of the default X screen.
func GetRootSize() (int, int, error) {
	if err := InitX11(); err != nil {
		return 0, 0, err
	}

	screen := xproto.Setup(XConn).DefaultScreen(XConn)
	if screen == nil {
		return 0, 0, ErrNoScreen
	}
	return int(screen.WidthInPixels), int(screen.HeightInPixels), nil
}

// GetGlobalMousePosition queries the pointer position relative to the root window.
func GetGlobalMousePosition() (int, int, error) {
	if err := InitX11(); err != nil {
		return 0, 0, err
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}
