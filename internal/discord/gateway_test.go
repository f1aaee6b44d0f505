package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/zinin/pagerbot/internal/embed"
	"github.com/zinin/pagerbot/internal/pager"
)

type respondCall struct {
	interaction *discordgo.Interaction
	resp        *discordgo.InteractionResponse
}

type editCall struct {
	interaction *discordgo.Interaction
	edit        *discordgo.WebhookEdit
}

// mockAPI records interaction responses
type mockAPI struct {
	responds   []respondCall
	edits      []editCall
	respondErr error
	editErr    error
}

func (m *mockAPI) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	m.responds = append(m.responds, respondCall{i, resp})
	return m.respondErr
}

func (m *mockAPI) InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.edits = append(m.edits, editCall{i, edit})
	return &discordgo.Message{}, m.editErr
}

type mockWaiter struct {
	clicks []pager.Click
}

func (m *mockWaiter) Wait(ctx context.Context, ids []string, timeout time.Duration) (pager.Click, bool, error) {
	if len(m.clicks) == 0 {
		return pager.Click{}, false, nil
	}
	c := m.clicks[0]
	m.clicks = m.clicks[1:]
	return c, true, nil
}

func componentInteraction(userID, customID string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:     "i-" + customID,
		Type:   discordgo.InteractionMessageComponent,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data:   discordgo.MessageComponentInteractionData{CustomID: customID},
	}
}

func testRender(t *testing.T, pages ...pager.Page) (*pager.Session, pager.Render) {
	t.Helper()
	s, err := pager.NewSession(pages, pager.SessionOptions{IDs: &pager.SequenceGenerator{Prefix: "id"}})
	if err != nil {
		t.Fatal(err)
	}
	return s, s.Render()
}

func TestGateway_Send(t *testing.T) {
	api := &mockAPI{}
	cmd := &discordgo.Interaction{ID: "cmd", Type: discordgo.InteractionApplicationCommand}
	gw := NewGateway(api, &mockWaiter{}, cmd)

	_, r := testRender(t, pager.MustPage("Hello", nil), pager.MustPage("World", nil))
	h, err := gw.Send(context.Background(), r, true)
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if len(api.responds) != 1 {
		t.Fatalf("expected 1 response, got %d", len(api.responds))
	}
	call := api.responds[0]
	if call.interaction != cmd {
		t.Error("response should target the command interaction")
	}
	if call.resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("unexpected response type %v", call.resp.Type)
	}
	if call.resp.Data.Content != "Hello" {
		t.Errorf("unexpected content %q", call.resp.Data.Content)
	}
	if call.resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("expected ephemeral flag, got %v", call.resp.Data.Flags)
	}

	ih, ok := h.(*interactionHandle)
	if !ok || !ih.responded || ih.interaction != cmd {
		t.Errorf("unexpected handle %#v", h)
	}
}

func TestGateway_Send_NotEphemeral(t *testing.T) {
	api := &mockAPI{}
	gw := NewGateway(api, &mockWaiter{}, &discordgo.Interaction{})

	_, r := testRender(t, pager.MustPage("Hello", nil))
	if _, err := gw.Send(context.Background(), r, false); err != nil {
		t.Fatal(err)
	}
	if api.responds[0].resp.Data.Flags != 0 {
		t.Errorf("expected no flags, got %v", api.responds[0].resp.Data.Flags)
	}
}

func TestGateway_Send_Error(t *testing.T) {
	api := &mockAPI{respondErr: errors.New("unknown interaction")}
	gw := NewGateway(api, &mockWaiter{}, &discordgo.Interaction{})

	_, r := testRender(t, pager.MustPage("Hello", nil))
	if _, err := gw.Send(context.Background(), r, false); err == nil {
		t.Error("expected error")
	}
}

func TestGateway_Update_PendingClick(t *testing.T) {
	api := &mockAPI{}
	gw := NewGateway(api, &mockWaiter{}, &discordgo.Interaction{})

	click, ok := ClickFromInteraction(componentInteraction("u1", "id-3:1"))
	if !ok {
		t.Fatal("expected click")
	}
	_, r := testRender(t, pager.MustPage("Hello", nil))

	if err := gw.Update(context.Background(), click.Handle, r); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(api.responds) != 1 || api.responds[0].resp.Type != discordgo.InteractionResponseUpdateMessage {
		t.Fatalf("expected one UpdateMessage response, got %+v", api.responds)
	}

	// Second update on the same interaction edits the response
	if err := gw.Update(context.Background(), click.Handle, r); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(api.responds) != 1 {
		t.Errorf("interaction must be answered once, got %d responses", len(api.responds))
	}
	if len(api.edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(api.edits))
	}
	if *api.edits[0].edit.Content != "Hello" {
		t.Errorf("unexpected edit content %q", *api.edits[0].edit.Content)
	}
}

func TestGateway_Update_RespondedHandleEdits(t *testing.T) {
	api := &mockAPI{}
	cmd := &discordgo.Interaction{ID: "cmd"}
	gw := NewGateway(api, &mockWaiter{}, cmd)

	_, r := testRender(t, pager.MustPage("Hello", nil))
	h, err := gw.Send(context.Background(), r, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := gw.Update(context.Background(), h, r); err != nil {
		t.Fatal(err)
	}
	if len(api.edits) != 1 || api.edits[0].interaction != cmd {
		t.Errorf("expected edit of the original response, got %+v", api.edits)
	}
}

func TestGateway_Update_WrongHandle(t *testing.T) {
	gw := NewGateway(&mockAPI{}, &mockWaiter{}, &discordgo.Interaction{})
	if err := gw.Update(context.Background(), "bogus", pager.Render{}); err == nil {
		t.Error("expected error for foreign handle")
	}
}

func TestGateway_Dismiss(t *testing.T) {
	api := &mockAPI{}
	gw := NewGateway(api, &mockWaiter{}, &discordgo.Interaction{})

	click, _ := ClickFromInteraction(componentInteraction("intruder", "id-3:1"))
	if err := gw.Dismiss(context.Background(), click); err != nil {
		t.Fatalf("Dismiss() error: %v", err)
	}
	if err := gw.Dismiss(context.Background(), click); err != nil {
		t.Fatalf("Dismiss() error: %v", err)
	}

	if len(api.responds) != 1 {
		t.Fatalf("expected a single deferred response, got %d", len(api.responds))
	}
	if api.responds[0].resp.Type != discordgo.InteractionResponseDeferredMessageUpdate {
		t.Errorf("unexpected response type %v", api.responds[0].resp.Type)
	}
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name string
		i    *discordgo.Interaction
		want string
	}{
		{"guild member", &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "m"}}}, "m"},
		{"direct message", &discordgo.Interaction{User: &discordgo.User{ID: "u"}}, "u"},
		{"member preferred", &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "m"}}, User: &discordgo.User{ID: "u"}}, "m"},
		{"none", &discordgo.Interaction{}, ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserID(tt.i); got != tt.want {
				t.Errorf("UserID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClickFromInteraction(t *testing.T) {
	click, ok := ClickFromInteraction(componentInteraction("u1", "abc:4"))
	if !ok {
		t.Fatal("expected click")
	}
	if click.UserID != "u1" || click.ControlID != "abc" || click.Page != 4 {
		t.Errorf("unexpected click %+v", click)
	}
	if ih, ok := click.Handle.(*interactionHandle); !ok || ih.responded {
		t.Errorf("click handle should be a pending interaction, got %#v", click.Handle)
	}

	if _, ok := ClickFromInteraction(&discordgo.Interaction{Type: discordgo.InteractionApplicationCommand}); ok {
		t.Error("commands are not clicks")
	}
	if _, ok := ClickFromInteraction(nil); ok {
		t.Error("nil is not a click")
	}
}

func TestComponentsFromRender(t *testing.T) {
	page := pager.MustPage("p", nil,
		pager.Button("like", "Like", pager.StylePrimary),
		pager.LinkButton("Docs", "https://example.com"),
		pager.Select("topic", "Pick", pager.SelectOption{Label: "Go", Value: "go"}),
	)
	_, r := testRender(t, page, page)

	comps := ComponentsFromRender(r)
	if len(comps) != 3 {
		t.Fatalf("expected 3 rows (buttons, select, nav), got %d", len(comps))
	}

	first := comps[0].(discordgo.ActionsRow).Components
	like := first[0].(discordgo.Button)
	if like.CustomID != "like" || like.Style != discordgo.PrimaryButton {
		t.Errorf("unexpected button %+v", like)
	}
	link := first[1].(discordgo.Button)
	if link.Style != discordgo.LinkButton || link.URL != "https://example.com" || link.CustomID != "" {
		t.Errorf("unexpected link %+v", link)
	}

	sel := comps[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	if sel.CustomID != "topic" || sel.MenuType != discordgo.StringSelectMenu || len(sel.Options) != 1 {
		t.Errorf("unexpected select %+v", sel)
	}

	nav := comps[2].(discordgo.ActionsRow).Components
	back := nav[0].(discordgo.Button)
	label := nav[1].(discordgo.Button)
	fwd := nav[2].(discordgo.Button)
	if back.CustomID != "id-1:1" || !back.Disabled || back.Style != discordgo.SuccessButton {
		t.Errorf("unexpected back %+v", back)
	}
	if label.Label != "1/2" || label.Style != discordgo.SecondaryButton {
		t.Errorf("unexpected label %+v", label)
	}
	if fwd.CustomID != "id-3:1" || fwd.Disabled {
		t.Errorf("unexpected forward %+v", fwd)
	}
}

func TestEmbeds(t *testing.T) {
	raw := &discordgo.MessageEmbed{Title: "raw"}
	if got := Embeds(raw); len(got) != 1 || got[0] != raw {
		t.Errorf("native embed should pass through, got %+v", got)
	}

	e := &embed.Embed{
		Title:    "T",
		Color:    0x00ff00,
		Fields:   []embed.Field{{Name: "n", Value: "v", Inline: true}},
		Footer:   "foot",
		ImageURL: "https://example.com/i.png",
	}
	got := Embeds(e)
	if len(got) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(got))
	}
	me := got[0]
	if me.Title != "T" || me.Color != 0x00ff00 || len(me.Fields) != 1 || !me.Fields[0].Inline {
		t.Errorf("unexpected embed %+v", me)
	}
	if me.Footer == nil || me.Footer.Text != "foot" || me.Image == nil || me.Image.URL != e.ImageURL {
		t.Errorf("footer or image missing: %+v", me)
	}

	for _, v := range []any{nil, &embed.Embed{}, "text"} {
		if got := Embeds(v); got == nil || len(got) != 0 {
			t.Errorf("Embeds(%v) = %v, want empty non-nil", v, got)
		}
	}
}

func TestContentFallback(t *testing.T) {
	_, r := testRender(t, pager.MustPage("", nil), pager.MustPage("", nil))
	if got := content(r); got != "Page 1/2" {
		t.Errorf("content() = %q, want %q", got, "Page 1/2")
	}

	_, r = testRender(t, pager.MustPage("", &embed.Embed{Title: "t"}))
	if got := content(r); got != "" {
		t.Errorf("embed-only page should have empty content, got %q", got)
	}
}

// End to end through the pager loop with a scripted waiter
func TestGateway_Paginate(t *testing.T) {
	api := &mockAPI{}
	cmd := &discordgo.Interaction{ID: "cmd"}
	c1, _ := ClickFromInteraction(componentInteraction("owner", "p-3:1"))
	gw := NewGateway(api, &mockWaiter{clicks: []pager.Click{c1}}, cmd)

	pages := []pager.Page{pager.MustPage("one", nil), pager.MustPage("two", nil)}
	err := pager.Paginate(context.Background(), gw, pages, pager.Options{
		OwnerID: "owner",
		IDs:     &pager.SequenceGenerator{Prefix: "p"},
	})
	if err != nil {
		t.Fatalf("Paginate() error: %v", err)
	}

	// initial response, update response to the click, edit on timeout
	if len(api.responds) != 2 || len(api.edits) != 1 {
		t.Fatalf("expected 2 responses and 1 edit, got %d and %d", len(api.responds), len(api.edits))
	}
	if api.responds[1].resp.Data.Content != "two" {
		t.Errorf("expected page two after click, got %q", api.responds[1].resp.Data.Content)
	}

	final := api.edits[0]
	if final.interaction != c1.Handle.(*interactionHandle).interaction {
		t.Error("timeout edit should target the last click interaction")
	}
	nav := (*final.edit.Components)[0].(discordgo.ActionsRow).Components
	if !nav[0].(discordgo.Button).Disabled || !nav[2].(discordgo.Button).Disabled {
		t.Error("both arrows should be disabled after timeout")
	}
}
