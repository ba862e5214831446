package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/louisbranch/cafe/internal/platform/i18n"
	"github.com/louisbranch/cafe/internal/platform/requestctx"
	"github.com/louisbranch/cafe/internal/services/tab/domain/tab"
)

func (s *Server) createTab(w http.ResponseWriter, r *http.Request) {
	var req openTabRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := s.newID()
	s.execute(w, r, http.StatusCreated, tab.OpenTab{ID: id, TableNumber: req.TableNumber, Waiter: req.Waiter})
}

func (s *Server) openTab(w http.ResponseWriter, r *http.Request) {
	id, err := tabIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req openTabRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, http.StatusOK, tab.OpenTab{ID: id, TableNumber: req.TableNumber, Waiter: req.Waiter})
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	id, err := tabIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req placeOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, http.StatusOK, tab.PlaceOrder{ID: id, Items: req.Items})
}

func (s *Server) markDrinksServed(w http.ResponseWriter, r *http.Request) {
	id, err := tabIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req markServedRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, http.StatusOK, tab.MarkDrinksServed{ID: id, MenuNumbers: req.MenuNumbers})
}

func (s *Server) markFoodServed(w http.ResponseWriter, r *http.Request) {
	id, err := tabIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req markServedRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, http.StatusOK, tab.MarkFoodServed{ID: id, MenuNumbers: req.MenuNumbers})
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, status int, cmd tab.Command) {
	result, err := s.tabs.Execute(r.Context(), cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	events, err := encodeEvents(result.Events)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, commandResponse{
		TabID:   cmd.TabID().String(),
		Version: result.Version,
		Events:  events,
	})
}

func (s *Server) getTab(w http.ResponseWriter, r *http.Request) {
	id, err := tabIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	state, version, err := s.tabs.Load(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTabResponse(r, id, state, version))
}

func newTabResponse(r *http.Request, id uuid.UUID, state tab.State, version uint64) tabResponse {
	locale, ok := requestctx.LanguageFromContext(r.Context())
	if !ok {
		locale = i18n.ResolveTag(r)
	}
	status := i18n.Text(locale, i18n.KeyTabClosed)
	if state.TabOpen {
		status = i18n.Text(locale, i18n.KeyTabOpen)
	}
	return tabResponse{
		TabID:                   id.String(),
		Version:                 version,
		TabOpen:                 state.TabOpen,
		Status:                  status,
		OutstandingDrinks:       nonNilItems(state.OutstandingDrinks),
		OutstandingFood:         nonNilItems(state.OutstandingFood),
		ServedItemsValue:        state.ServedItemsValue,
		ServedItemsValueDisplay: i18n.FormatAmount(locale, state.ServedItemsValue),
		Locale:                  locale.String(),
	}
}

func (s *Server) getEvents(w http.ResponseWriter, r *http.Request) {
	id, err := tabIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := s.tabs.Records(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	envelopes := make([]eventEnvelope, 0, len(records))
	for _, rec := range records {
		evt, err := tab.DecodePayload(tab.EventType(rec.Type), rec.PayloadJSON)
		if err != nil {
			writeError(w, r, err)
			return
		}
		data, err := tab.MarshalEvent(evt)
		if err != nil {
			writeError(w, r, err)
			return
		}
		envelopes = append(envelopes, eventEnvelope{
			Seq:       rec.Seq,
			Timestamp: rec.Timestamp,
			Hash:      rec.Hash,
			ChainHash: rec.ChainHash,
			Event:     data,
		})
	}
	writeJSON(w, http.StatusOK, eventsResponse{TabID: id.String(), Events: envelopes})
}

func (s *Server) listTabs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.tabs.ListTabs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, listTabsResponse{TabIDs: ids})
}
