package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/theme-sync/internal/model"
)

// XDG desktop portal Settings interface.
const (
	PortalDest          = "org.freedesktop.portal.Desktop"
	PortalPath          = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	SettingsInterface   = "org.freedesktop.portal.Settings"
	AppearanceNamespace = "org.freedesktop.appearance"
	ColorSchemeKey      = "color-scheme"
)

// Portal color-scheme values.
const (
	ColorSchemeDefault     uint32 = 0
	ColorSchemePreferDark  uint32 = 1
	ColorSchemePreferLight uint32 = 2
)

// Portal reads the preference from the XDG desktop portal on the session bus.
type Portal struct {
	logger  *slog.Logger
	connect func() (*dbus.Conn, error)
}

// NewPortal creates a Portal source using a private session bus connection.
func NewPortal(logger *slog.Logger) *Portal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Portal{
		logger: logger,
		connect: func() (*dbus.Conn, error) {
			return dbus.ConnectSessionBus()
		},
	}
}

// ColorSchemeName maps a portal color-scheme value onto the gsettings
// vocabulary, so readings normalize the same way from either source.
func ColorSchemeName(v uint32) string {
	switch v {
	case ColorSchemePreferDark:
		return "prefer-dark"
	case ColorSchemePreferLight:
		return "prefer-light"
	default:
		return "default"
	}
}

// Query reads org.freedesktop.appearance color-scheme once.
func (p *Portal) Query(ctx context.Context) (string, error) {
	conn, err := p.connect()
	if err != nil {
		return "", model.NewError(model.KindSubprocessSpawn, "connect to session bus", err)
	}
	defer conn.Close()

	obj := conn.Object(PortalDest, PortalPath)

	var v dbus.Variant
	err = obj.CallWithContext(ctx, SettingsInterface+".ReadOne", 0, AppearanceNamespace, ColorSchemeKey).Store(&v)
	if err != nil {
		// ReadOne is portal version 2; Read is the deprecated fallback.
		p.logger.Debug("ReadOne not available, trying Read", "error", err)
		if err := obj.CallWithContext(ctx, SettingsInterface+".Read", 0, AppearanceNamespace, ColorSchemeKey).Store(&v); err != nil {
			return "", model.NewError(model.KindSubprocessExit, "portal query failed", err)
		}
	}

	scheme, err := colorSchemeValue(v)
	if err != nil {
		return "", model.NewError(model.KindSubprocessExit, "portal query failed", err)
	}

	return ColorSchemeName(scheme), nil
}

// colorSchemeValue unwraps v, which Read nests in a second variant.
func colorSchemeValue(v dbus.Variant) (uint32, error) {
	val := v.Value()
	for {
		inner, ok := val.(dbus.Variant)
		if !ok {
			break
		}
		val = inner.Value()
	}

	scheme, ok := val.(uint32)
	if !ok {
		return 0, fmt.Errorf("unexpected color-scheme type %T", val)
	}
	return scheme, nil
}

// Subscribe listens for SettingChanged signals on the appearance namespace.
func (p *Portal) Subscribe(ctx context.Context) (Stream, error) {
	conn, err := p.connect()
	if err != nil {
		return nil, model.NewError(model.KindSubprocessSpawn, "connect to session bus", err)
	}

	err = conn.AddMatchSignalContext(ctx,
		dbus.WithMatchObjectPath(PortalPath),
		dbus.WithMatchInterface(SettingsInterface),
		dbus.WithMatchMember("SettingChanged"),
		dbus.WithMatchArg(0, AppearanceNamespace),
	)
	if err != nil {
		conn.Close()
		return nil, model.NewError(model.KindSubprocessSpawn, "subscribe to portal settings", err)
	}

	ch := make(chan *dbus.Signal, 16)
	conn.Signal(ch)

	p.logger.Info("watching preference changes", "portal", PortalDest)

	return &signalStream{
		conn:   conn,
		ch:     ch,
		logger: p.logger,
	}, nil
}

// signalStream turns portal SettingChanged signals into preference lines.
type signalStream struct {
	conn   *dbus.Conn
	ch     chan *dbus.Signal
	logger *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Next returns the next color-scheme change. The stream ends when the bus
// connection closes.
func (s *signalStream) Next(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case sig, ok := <-s.ch:
			if !ok {
				return "", io.EOF
			}
			line, ok := settingLine(sig)
			if !ok {
				s.logger.Debug("ignoring signal", "name", sig.Name)
				continue
			}
			return line, nil
		}
	}
}

// settingLine extracts the color-scheme reading from a SettingChanged signal.
func settingLine(sig *dbus.Signal) (string, bool) {
	if sig == nil || sig.Name != SettingsInterface+".SettingChanged" || len(sig.Body) < 3 {
		return "", false
	}

	namespace, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if namespace != AppearanceNamespace || key != ColorSchemeKey {
		return "", false
	}

	value, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return "", false
	}

	scheme, err := colorSchemeValue(value)
	if err != nil {
		return "", false
	}
	return ColorSchemeName(scheme), true
}

// Close drops the signal subscription and the bus connection.
func (s *signalStream) Close() error {
	s.closeOnce.Do(func() {
		if s.conn == nil {
			return
		}
		s.conn.RemoveSignal(s.ch)
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}
