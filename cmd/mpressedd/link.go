package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/llehouerou/mpressed/internal/errmsg"
	"github.com/llehouerou/mpressed/internal/lastfm"
)

const linkTimeout = 5 * time.Minute

// link runs the Last.fm desktop authorization flow and stores the session.
// The token is taken from the local callback when the API account redirects
// to it, or the requested token is used once the user presses Enter.
func link(ctx context.Context, opts options) error {
	cfg, logger, st, err := setup(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	if !cfg.HasLastfmConfig() {
		return errors.New(errmsg.Format(errmsg.OpLastfmLink,
			errors.New("lastfm.api_key and lastfm.api_secret must be set")))
	}

	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	token, err := client.GetToken()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmLink, err))
	}

	tokens := make(chan string, 2)

	srv, err := lastfm.StartAuthServer()
	if err != nil {
		logger.Debug("auth callback server unavailable", "err", err)
	} else {
		defer srv.Shutdown()
		go func() {
			select {
			case t := <-srv.TokenChan():
				tokens <- t
			case <-ctx.Done():
			}
		}()
	}

	go func() {
		if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err == nil {
			tokens <- token
		}
	}()

	url := client.GetAuthURL(token)
	fmt.Printf("Authorize mpressed on Last.fm:\n\n  %s\n\nPress Enter once done.\n", url)
	if err := lastfm.OpenBrowser(url); err != nil {
		logger.Debug("open browser", "err", err)
	}

	authorized, err := lastfm.WaitForToken(ctx, tokens, linkTimeout)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmLink, err))
	}

	username, sessionKey, err := client.GetSession(authorized)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmLink, err))
	}
	if err := st.SaveLastfmSession(ctx, username, sessionKey); err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmLink, err))
	}

	fmt.Printf("Linked Last.fm account %s.\n", username)
	return nil
}
