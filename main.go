// Snappy Ruler Set: an interactive sketch surface with geometry-assisted
// tools, optionally shared live across the local network.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"fyne.io/fyne/v2"

	"snappyruler/internal/engine"
	snet "snappyruler/internal/net"
	"snappyruler/internal/settings"
	"snappyruler/internal/share"
	"snappyruler/internal/ui"
)

const defaultPort = 8787

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	host := flag.Bool("host", false, "share this canvas on the local network")
	join := flag.String("join", "", "join a shared canvas at host:port ('auto' to discover via mDNS)")
	port := flag.Int("port", defaultPort, "port to share on")
	flag.Parse()

	sett := settings.Load()
	eng := engine.New(engine.SnapConfig{
		ToleranceDeg: sett.SnapToleranceDeg,
		RulerAngles:  sett.SnapAngles,
	})

	var shareLink string
	var clearShare func()
	switch {
	case *host:
		shareLink, clearShare = startHost(eng, *port)
	case *join != "":
		clearShare = startClient(eng, *join)
	}

	a := ui.New(eng, sett, shareLink)
	a.OnClearShare = clearShare
	a.Run()
}

// startHost runs the share hub, announces it over mDNS, and wires the
// engine's commits to the broadcast path. Returns the share link and the
// clear-broadcast hook.
func startHost(eng *engine.Engine, port int) (string, func()) {
	sess := share.NewSession()
	hub := snet.NewHub()

	hub.OnJoin = func() *snet.Message {
		strokes := sess.All()
		sort.Slice(strokes, func(i, j int) bool {
			return strokes[i].Lamport < strokes[j].Lamport
		})
		return &snet.Message{Type: "sync", Strokes: strokes}
	}
	hub.OnMessage = func(msg snet.Message) {
		applyRemote(eng, sess, msg)
	}
	eng.OnCommit = func(s *engine.Stroke) {
		stamped := sess.AddLocal(s)
		hub.Broadcast(snet.Message{Type: "stroke", Stroke: &stamped})
	}

	go func() {
		if err := hub.Serve(port); err != nil {
			log.Printf("share hub stopped: %v", err)
		}
	}()
	if _, err := snet.Advertise(port); err != nil {
		log.Printf("mDNS advertise failed: %v", err)
	}

	ip, err := snet.OutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	link := fmt.Sprintf("%s:%d", ip, port)

	return link, func() {
		sess.Reset()
		hub.Broadcast(snet.Message{Type: "clear", Site: sess.SiteID()})
	}
}

// startClient connects to a sharing host (browsing mDNS when asked) and
// mirrors the boards in both directions.
func startClient(eng *engine.Engine, addr string) func() {
	if addr == "auto" {
		found := make(chan string, 1)
		if err := snet.Browse(func(a string) {
			select {
			case found <- a:
			default:
			}
		}); err != nil {
			log.Fatalf("mDNS browse failed: %v", err)
		}
		select {
		case addr = <-found:
			log.Printf("discovered host at %s", addr)
		case <-time.After(5 * time.Second):
			log.Fatal("no sharing host found on the local network")
		}
	}

	client, err := snet.Dial(addr)
	if err != nil {
		log.Fatalf("joining %s: %v", addr, err)
	}

	sess := share.NewSession()
	client.OnMessage = func(msg snet.Message) {
		applyRemote(eng, sess, msg)
	}
	go client.Listen()

	eng.OnCommit = func(s *engine.Stroke) {
		stamped := sess.AddLocal(s)
		if err := client.Send(snet.Message{Type: "stroke", Stroke: &stamped}); err != nil {
			log.Printf("sending stroke: %v", err)
		}
	}

	return func() {
		sess.Reset()
		if err := client.Send(snet.Message{Type: "clear", Site: sess.SiteID()}); err != nil {
			log.Printf("sending clear: %v", err)
		}
	}
}

// applyRemote merges one network message into the local canvas. Engine
// mutations are marshalled onto the UI thread: the engine keeps a single
// logical owner.
func applyRemote(eng *engine.Engine, sess *share.Session, msg snet.Message) {
	switch msg.Type {
	case "stroke":
		if msg.Stroke == nil {
			return
		}
		if sess.AddRemote(*msg.Stroke) {
			s := msg.Stroke.Stroke
			fyne.Do(func() {
				eng.AddRemoteStroke(s)
			})
		}
	case "clear":
		sess.Reset()
		fyne.Do(eng.ClearRemote)
	case "sync":
		strokes := make([]share.StampedStroke, len(msg.Strokes))
		copy(strokes, msg.Strokes)
		sort.Slice(strokes, func(i, j int) bool {
			return strokes[i].Lamport < strokes[j].Lamport
		})
		for _, stamped := range strokes {
			if sess.AddRemote(stamped) {
				s := stamped.Stroke
				fyne.Do(func() {
					eng.AddRemoteStroke(s)
				})
			}
		}
	default:
		log.Printf("[net] unknown message type %q", msg.Type)
	}
}
