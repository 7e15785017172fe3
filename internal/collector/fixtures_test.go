package collector

const statusReport = `UP 0 years, 0 days, 1 hour, 2 minutes, 3 seconds, 4 milliseconds, 5 microseconds
FreeSWITCH (Version 1.10.9 -release 64bit) is ready
12 session(s) since startup
2 session(s) - peak 5, last 5min 3 
0 session(s) per Sec out of max 30, peak 4, last 5min 1 
1000 session(s) max
min idle cpu 0.00/97.67
Current Stack Size/Max 240K/8192K
`

const sofiaStatusReport = `<?xml version="1.0" encoding="ISO-8859-1"?>
<profiles>
  <profile>
    <name>external</name>
    <type>profile</type>
    <data>sip:mod_sofia@203.0.113.5:5080</data>
    <state>RUNNING (0)</state>
  </profile>
  <alias>
    <name>10.0.0.5</name>
    <type>alias</type>
    <data>internal</data>
    <state>ALIASED</state>
  </alias>
  <profile>
    <name>internal</name>
    <type>profile</type>
    <data>sip:mod_sofia@10.0.0.5:5060</data>
    <state>RUNNING (2)</state>
  </profile>
  <gateway>
    <name>external::carrier</name>
    <type>gateway</type>
    <data>sip:carrier@198.51.100.7</data>
    <state>REGED</state>
  </gateway>
  <profile>
    <name>internal</name>
    <type>profile</type>
    <data>sip:mod_sofia@10.0.0.5:5060</data>
    <state>RUNNING (2) (TLS)</state>
  </profile>
</profiles>
`

const sofiaInternalReport = `<?xml version="1.0" encoding="ISO-8859-1"?>
<profile>
  <profile-info>
    <domain-name>internal</domain-name>
    <calls-in>17</calls-in>
    <failed-calls-in>2</failed-calls-in>
    <calls-out>9</calls-out>
    <failed-calls-out>1</failed-calls-out>
    <registrations>4</registrations>
  </profile-info>
  <registrations></registrations>
</profile>
`

const sofiaExternalReport = `<?xml version="1.0" encoding="ISO-8859-1"?>
<profile>
  <profile-info>
    <domain-name>external</domain-name>
    <calls-in>3</calls-in>
    <failed-calls-in>0</failed-calls-in>
    <calls-out>40</calls-out>
    <failed-calls-out>6</failed-calls-out>
  </profile-info>
</profile>
`

const conferenceListReport = `+OK Conference 3000 (2 members rate: 8000 flags: running|answered|enforce_min|dynamic|exit_sound|enter_sound)
1;sofia/internal/1000@10.0.0.5;3b5c8a2e-0000-4000-8000-000000000001;Conference Bridge;1000;hear|speak;0;0;100
2;sofia/internal/1001@10.0.0.5;3b5c8a2e-0000-4000-8000-000000000002;Alice;1001;hear|speak|talking;0;0;100
+OK Conference sales-room (1 member rate: 16000 flags: running|answered)
3;sofia/external/+15550100@203.0.113.9;3b5c8a2e-0000-4000-8000-000000000003;Conference Call;+15550100;hear|speak;0;0;100
`

const conferenceMembersReport = `1;3b5c8a2e-0000-4000-8000-000000000001;5;100;0;1;20;10;3;98;1;0;22;11
2;3b5c8a2e-0000-4000-8000-000000000002;9;80;2;0;25;12;2;99;0;3;18;9
`

const conferenceLoopReport = `Timer:
  Time Hiccups: 0
  Max Wait: 21 ms
  Min Wait: 19 ms
  Avg Wait: 20 ms
Mixing:
  Time Hiccups: 2
  Max Wait: 5 ms
  Min Wait: 0 ms
  Avg Wait: 1 ms
`

const showModulesReport = `type,name,ikey,filename
api,bgapi,mod_commands,/usr/lib/freeswitch/mod/mod_commands.so
timer,soft,CORE_SOFTTIMER_MODULE,
codec,PCMU,CORE_PCM_MODULE,
timer,timerfd,mod_timerfd,/usr/lib/freeswitch/mod/mod_timerfd.so

4 total.
`

const softTimerReport = `soft;1;20000;20010
soft;2;20000;35000
soft;3;20000;41000
soft;4;20000;25000
Avg: 30.252ms Total Time: 121.01ms
soft;5;20000;99999
`

const timerfdReport = `timerfd;1;20000;19990
timerfd;2;20000;20004
Avg: 19.997ms Total Time: 39.99ms
`
