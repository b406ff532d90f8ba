package client

import (
	"context"
	"fmt"

	"github.com/myrtus0x0/triage/internal/constants"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// profileAssignment selects explicit profiles for an interactive
// submission. The profiles key is always present.
type profileAssignment struct {
	Auto     bool                      `json:"auto"`
	Profiles []triage.ProfileSelection `json:"profiles"`
}

// automaticAssignment delegates profile selection to the server. The pick
// key is always present and the profiles key never is; the two assignment
// modes are mutually exclusive on the server side.
type automaticAssignment struct {
	Auto bool     `json:"auto"`
	Pick []string `json:"pick"`
}

// SetSampleProfile assigns explicit profiles to an interactive submission.
func (c *Client) SetSampleProfile(ctx context.Context, sampleID string, profiles []triage.ProfileSelection) error {
	if profiles == nil {
		profiles = []triage.ProfileSelection{}
	}

	_, err := c.httpClient.Post(ctx, constants.APIPathSamples+"/"+sampleID+"/profile", profileAssignment{
		Auto:     false,
		Profiles: profiles,
	})
	if err != nil {
		return fmt.Errorf("setting sample profile: %w", err)
	}

	return nil
}

// SetSampleProfileAutomatic lets the server pick profiles, optionally
// restricted to the given archive member paths.
func (c *Client) SetSampleProfileAutomatic(ctx context.Context, sampleID string, pick []string) error {
	if pick == nil {
		pick = []string{}
	}

	_, err := c.httpClient.Post(ctx, constants.APIPathSamples+"/"+sampleID+"/profile", automaticAssignment{
		Auto: true,
		Pick: pick,
	})
	if err != nil {
		return fmt.Errorf("setting sample profile automatically: %w", err)
	}

	return nil
}

// profilePayload is the profile creation request body.
type profilePayload struct {
	Name    string             `json:"name"`
	Tags    []string           `json:"tags"`
	Network triage.NetworkType `json:"network"`
	Timeout int                `json:"timeout"`
}

// CreateProfile creates an analysis profile.
func (c *Client) CreateProfile(ctx context.Context, name string, tags []string, network triage.NetworkType, timeout int) error {
	_, err := c.httpClient.Post(ctx, constants.APIPathProfiles, profilePayload{
		Name:    name,
		Tags:    tags,
		Network: network,
		Timeout: timeout,
	})
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}

	return nil
}

// DeleteProfile removes a profile by name or ID.
func (c *Client) DeleteProfile(ctx context.Context, profileID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathProfiles+"/"+profileID)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	return nil
}

// Profiles returns a paginator over the caller's profiles.
func (c *Client) Profiles(ctx context.Context, max int) *triage.Paginator[triage.Profile] {
	return triage.NewPaginator(ctx, pageFetcher[triage.Profile](c.httpClient), constants.APIPathProfiles, max)
}
