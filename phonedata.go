// gammu
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of gammu.
//
// gammu is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// gammu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with gammu; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package gammu

// ModelInfo is the static description of a known handset model,
// mirroring gsmstate.c's GSM_PhoneModel table entries closely enough
// to drive phone-module selection.
type ModelInfo struct {
	Number   string
	Features FeatureSet
}

// PhoneData is the mutable per-connection scratch the coordinator and
// the active phone module share.
type PhoneData struct {
	ModelInfo      *ModelInfo
	Manufacturer   string
	Model          string
	Version        string
	VerDate        string
	VerNum         string
	SentMsg        *Protocol_Message
	RequestMsg     *Protocol_Message
	DispatchError  error
	RequestID      RequestID
	StartInfoCount int
}

// reset clears identity fields on behalf of CloseConnection.
func (p *PhoneData) reset() {
	p.ModelInfo = nil
	p.Manufacturer = ""
	p.Model = ""
	p.Version = ""
	p.VerDate = ""
	p.VerNum = ""
}

// IncomingCallCallback etc. are the signatures SetIncoming*Callback
// installs; userData is passed through uninterpreted.
type (
	IncomingCallCallback  func(s *StateMachine, userData any)
	IncomingSMSCallback   func(s *StateMachine, userData any)
	IncomingCBCallback    func(s *StateMachine, userData any)
	IncomingUSSDCallback  func(s *StateMachine, userData any)
	SendSMSStatusCallback func(s *StateMachine, status int, userData any)
)

// UserCallbacks holds the optional handlers a caller may install for
// unsolicited frames (requestID == IDIncomingFrame) a phone module's
// reply table recognizes.
type UserCallbacks struct {
	IncomingCall          IncomingCallCallback
	IncomingCallUserData  any
	IncomingSMS           IncomingSMSCallback
	IncomingSMSUserData   any
	IncomingCB            IncomingCBCallback
	IncomingCBUserData    any
	IncomingUSSD          IncomingUSSDCallback
	IncomingUSSDUserData  any
	SendSMSStatus         SendSMSStatusCallback
	SendSMSStatusUserData any
	// UserReplyFunctions, when non-nil, is consulted before the active
	// phone module's table in DispatchMessage.
	UserReplyFunctions []ReplyEntry
}
